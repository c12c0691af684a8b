package lingmatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// level is one resolved grouping vector, aligned 1:1 with matrix rows.
type level struct {
	name   string
	values []string
}

// grouping is the normalized grouping specification: the ordered levels
// plus, when collapsed, one composite label per row.
type grouping struct {
	levels    []level
	allLevels bool
}

func (g *grouping) empty() bool { return len(g.levels) == 0 }

// descriptor renders the grouping for the output contract.
func (g *grouping) descriptor() string {
	if g.empty() {
		return ""
	}
	names := make([]string, len(g.levels))
	for i, lv := range g.levels {
		names[i] = lv.name
	}
	return strings.Join(names, " * ")
}

// composite returns the per-row composite label combining the given number
// of leading levels via ordered concatenation.
func (g *grouping) composite(depth int) []string {
	if depth <= 0 || depth > len(g.levels) {
		depth = len(g.levels)
	}
	rows := len(g.levels[0].values)
	out := make([]string, rows)
	parts := make([]string, depth)
	for i := 0; i < rows; i++ {
		for d := 0; d < depth; d++ {
			parts[d] = g.levels[d].values[i]
		}
		out[i] = strings.Join(parts[:depth], " ")
	}
	return out
}

// resolveGroups resolves each grouping argument (a literal vector or a
// column reference) into a level aligned with the matrix rows.
func (e *Engine) resolveGroups(gs []any, data, compData Dataset, rows int) ([]level, error) {
	levels := make([]level, 0, len(gs))
	for i, g := range gs {
		name := fmt.Sprintf("group%d", i+1)
		if ref, ok := g.(string); ok {
			v, src, err := resolveRef(ref,
				DatasetSource("data", data),
				DatasetSource("comp.data", compData),
			)
			if err != nil {
				return nil, &ConfigurationError{Reason: err.Error(), cause: err.(*NotFoundError)}
			}
			e.logger.LogResolve(ref, src)
			name = ref
			g = v
		}
		values, err := toLabels(g)
		if err != nil {
			return nil, configErrorf("grouping %s: %v", name, err)
		}
		if len(values) != rows {
			return nil, configErrorf("grouping %s has %d values for %d rows", name, len(values), rows)
		}
		levels = append(levels, level{name: name, values: values})
	}
	return levels, nil
}

// toLabels converts a grouping vector of any supported element type into
// string labels.
func toLabels(v any) ([]string, error) {
	switch vs := v.(type) {
	case []string:
		return vs, nil
	case []int:
		out := make([]string, len(vs))
		for i, x := range vs {
			out[i] = strconv.Itoa(x)
		}
		return out, nil
	case []float64:
		out := make([]string, len(vs))
		for i, x := range vs {
			out[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return out, nil
	case []bool:
		out := make([]string, len(vs))
		for i, x := range vs {
			out[i] = strconv.FormatBool(x)
		}
		return out, nil
	case []any:
		out := make([]string, len(vs))
		for i, x := range vs {
			out[i] = fmt.Sprint(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported grouping vector type %T", v)
	}
}

// split is one partition of the rows sharing a grouping label.
type split struct {
	label string
	rows  []int
	bits  *roaring.Bitmap
}

// splitsOf partitions the rows in scope by label, ordered by first
// appearance. A nil scope means all rows.
func splitsOf(values []string, scope *roaring.Bitmap) []split {
	inScope := func(i int) bool { return scope == nil || scope.ContainsInt(i) }
	index := make(map[string]int)
	var out []split
	for i, label := range values {
		if !inScope(i) {
			continue
		}
		pos, ok := index[label]
		if !ok {
			pos = len(out)
			index[label] = pos
			out = append(out, split{label: label, bits: roaring.New()})
		}
		out[pos].rows = append(out[pos].rows, i)
		out[pos].bits.AddInt(i)
	}
	return out
}

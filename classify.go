package lingmatch

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/lingmatch/dtm"
)

// classifyInput carries the context the classifier needs: the working
// matrix (for row counts and auto-profile correlation) and which other
// arguments were supplied.
type classifyInput struct {
	matrix            *dtm.Matrix
	groupSupplied     bool
	compDataSupplied  bool
	compGroupSupplied bool
	compSupplied      bool
	data              Dataset
	compData          Dataset
}

// classify resolves the raw comparison value into a tagged CompSpec.
// Raw comparison texts are returned separately; the caller converts them to
// a feature matrix and prepends them ahead of the input.
func (e *Engine) classify(raw any, in classifyInput) (*CompSpec, []string, error) {
	rows := in.matrix.Rows()

	switch v := raw.(type) {
	case nil:
		// Defaults: pairwise only when comparison, grouping,
		// comparison-dataset, and comparison-group were all omitted.
		if !in.compSupplied && !in.groupSupplied && !in.compDataSupplied && !in.compGroupSupplied {
			return &CompSpec{Kind: CompPairwise}, nil, nil
		}
		return &CompSpec{Kind: CompMean, Reduce: dtm.Mean, ReduceName: "mean"}, nil, nil

	case Reducer:
		if v.Fn == nil {
			return nil, nil, configErrorf("reducer %q has no function", v.Name)
		}
		return &CompSpec{Kind: CompAggregate, Reduce: v.Fn, ReduceName: v.Name}, nil, nil

	case dtm.ReduceFunc:
		return &CompSpec{Kind: CompAggregate, Reduce: v, ReduceName: "function"}, nil, nil

	case func([]float64) float64:
		return &CompSpec{Kind: CompAggregate, Reduce: v, ReduceName: "function"}, nil, nil

	case string:
		return e.classifyString(v, in)

	case []string:
		return e.classifyStrings(v, rows)

	case []bool:
		if len(v) != rows {
			return nil, nil, configErrorf("comparison vector has %d values for %d rows", len(v), rows)
		}
		sel := roaring.New()
		for i, b := range v {
			if b {
				sel.AddInt(i)
			}
		}
		return &CompSpec{Kind: CompSelection, Selection: sel}, nil, nil

	case []int:
		return classifyNumeric(v, rows)

	case []float64:
		ints := make([]int, len(v))
		for i, f := range v {
			ints[i] = int(f)
			if float64(ints[i]) != f {
				return nil, nil, configErrorf("comparison vector value %v is not a row index", f)
			}
		}
		return classifyNumeric(ints, rows)

	case map[string]float64:
		cols := make([]string, 0, len(v))
		for c := range v {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		row := make([]float64, len(cols))
		for i, c := range cols {
			row[i] = v[c]
		}
		m, err := dtm.New(cols, [][]float64{row})
		if err != nil {
			return nil, nil, configErrorf("comparison vector: %v", err)
		}
		return &CompSpec{Kind: CompMatrix, Matrix: m}, nil, nil

	case *dtm.Matrix:
		return &CompSpec{Kind: CompMatrix, Matrix: v}, nil, nil

	default:
		return nil, nil, configErrorf("unsupported comparison value of type %T", raw)
	}
}

func (e *Engine) classifyString(s string, in classifyInput) (*CompSpec, []string, error) {
	// A bare name resolves as a column reference first: comparison-side
	// dataset, then the primary dataset.
	if v, src, err := resolveRef(s,
		DatasetSource("comp.data", in.compData),
		DatasetSource("data", in.data),
	); err == nil {
		e.logger.LogResolve(s, src)
		return e.classify(v, in)
	}

	if strings.ContainsAny(s, " \t\n,") {
		// Embedded separators: not a keyword, treat as one raw text.
		return nil, []string{s}, nil
	}

	// Profile names are attempted before mode keywords.
	name, vec, ok, err := e.profiles.Lookup(s)
	if err != nil {
		return nil, nil, &ConfigurationError{Reason: err.Error(), cause: err}
	}
	if ok {
		return &CompSpec{Kind: CompProfile, Profile: name, Baseline: vec}, nil, nil
	}

	q := strings.ToLower(s)
	switch {
	case strings.HasPrefix("auto", q):
		name, vec, err := e.profiles.AutoSelect(in.matrix.Columns(), in.matrix.ColumnMeans(nil))
		if err != nil {
			return nil, nil, dataError(err)
		}
		return &CompSpec{Kind: CompProfile, Profile: name, Auto: true, Baseline: vec}, nil, nil
	case strings.HasPrefix("pairwise", q):
		return &CompSpec{Kind: CompPairwise}, nil, nil
	case strings.HasPrefix("sequential", q):
		return &CompSpec{Kind: CompSequential}, nil, nil
	}

	nf := &NotFoundError{Ref: s, Sources: []string{"comp.data", "data", "profiles", "keywords"}}
	return nil, nil, &ConfigurationError{Reason: nf.Error(), cause: nf}
}

func (e *Engine) classifyStrings(vs []string, rows int) (*CompSpec, []string, error) {
	if len(vs) == 0 {
		return nil, nil, configErrorf("empty comparison vector")
	}
	// A category-like vector aligned with the rows selects the truthy rows
	// as the baseline; anything else is raw comparison texts.
	if len(vs) == rows {
		distinct := make(map[string]struct{}, len(vs))
		booleanLike := true
		sel := roaring.New()
		for i, s := range vs {
			distinct[s] = struct{}{}
			truthy, ok := truthiness(s)
			if !ok {
				booleanLike = false
				break
			}
			if truthy {
				sel.AddInt(i)
			}
		}
		if booleanLike && len(distinct) < len(vs) {
			return &CompSpec{Kind: CompSelection, Selection: sel}, nil, nil
		}
	}
	return nil, vs, nil
}

func classifyNumeric(v []int, rows int) (*CompSpec, []string, error) {
	if len(v) == 0 {
		return nil, nil, configErrorf("empty comparison vector")
	}
	if len(v) >= rows {
		// Aligned 0/1 vectors act as a selection mask.
		if len(v) == rows {
			mask := true
			sel := roaring.New()
			for i, x := range v {
				if x != 0 && x != 1 {
					mask = false
					break
				}
				if x == 1 {
					sel.AddInt(i)
				}
			}
			if mask {
				return &CompSpec{Kind: CompSelection, Selection: sel}, nil, nil
			}
		}
		return nil, nil, configErrorf("comparison vector has %d values for %d rows", len(v), rows)
	}
	sel := roaring.New()
	for _, x := range v {
		if x < 0 || x >= rows {
			return nil, nil, configErrorf("comparison row index %d out of range [0,%d)", x, rows)
		}
		sel.AddInt(x)
	}
	return &CompSpec{Kind: CompSelection, Selection: sel}, nil, nil
}

// truthiness interprets a label as a boolean. The second return reports
// whether the label is boolean-like at all.
func truthiness(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y":
		return true, true
	case "false", "f", "0", "no", "n", "":
		return false, true
	default:
		return false, false
	}
}

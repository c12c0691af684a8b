package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/lingmatch/metric"
)

// CoverageThreshold is the minimum fraction of matrix columns that must map
// to canonical profile columns for the alias short-circuit to apply.
const CoverageThreshold = 0.75

// AmbiguousMatchError is returned when a partial profile name matches more
// than one profile.
type AmbiguousMatchError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous profile %q: matches %s", e.Query, strings.Join(e.Matches, ", "))
}

// AliasMap maps variant column names to canonical profile column names.
type AliasMap map[string]string

// Canonical resolves a column name through the alias map, falling back to
// the name itself.
func (a AliasMap) Canonical(name string) string {
	if canonical, ok := a[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// Table is an immutable set of named baseline profiles over canonical
// feature columns.
type Table struct {
	names    []string
	cols     []string
	colIndex map[string]int
	rows     [][]float64
}

// New creates a profile table. Every row must have one value per column.
func New(names, cols []string, rows [][]float64) (*Table, error) {
	if len(names) != len(rows) {
		return nil, fmt.Errorf("got %d names for %d rows", len(names), len(rows))
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("profile table must have at least one column")
	}
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate profile column %q", c)
		}
		idx[c] = i
	}
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("profile %q has %d values, want %d", names[i], len(r), len(cols))
		}
	}
	return &Table{
		names:    slices.Clone(names),
		cols:     slices.Clone(cols),
		colIndex: idx,
		rows:     rows,
	}, nil
}

// Names returns the profile names in order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Columns returns the canonical feature column names.
func (t *Table) Columns() []string { return slices.Clone(t.cols) }

// Profile returns the named profile's vector by exact match.
func (t *Table) Profile(name string) ([]float64, bool) {
	for i, n := range t.names {
		if n == name {
			return slices.Clone(t.rows[i]), true
		}
	}
	return nil, false
}

// Lookup resolves a possibly partial, case-insensitive profile name.
// A prefix matching more than one profile is an AmbiguousMatchError.
func (t *Table) Lookup(query string) (string, []float64, bool, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var matches []int
	for i, n := range t.names {
		lower := strings.ToLower(n)
		if lower == q {
			matches = []int{i}
			break
		}
		if strings.HasPrefix(lower, q) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil, false, nil
	case 1:
		i := matches[0]
		return t.names[i], slices.Clone(t.rows[i]), true, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = t.names[m]
		}
		return "", nil, false, &AmbiguousMatchError{Query: query, Matches: names}
	}
}

// AutoSelect picks the profile whose vector correlates best (Pearson) with
// the given column-wise mean over the shared columns.
func (t *Table) AutoSelect(cols []string, mean []float64) (string, []float64, error) {
	if len(cols) != len(mean) {
		return "", nil, fmt.Errorf("got %d values for %d columns", len(mean), len(cols))
	}
	var shared []int // positions into cols with a canonical counterpart
	for i, c := range cols {
		if _, ok := t.colIndex[c]; ok {
			shared = append(shared, i)
		}
	}
	if len(shared) == 0 {
		return "", nil, fmt.Errorf("no profile columns shared with input")
	}
	pearson, err := metric.Provider(metric.Pearson)
	if err != nil {
		return "", nil, err
	}
	a := make([]float64, len(shared))
	b := make([]float64, len(shared))
	for i, pos := range shared {
		a[i] = mean[pos]
	}
	best := -1
	bestScore := 0.0
	for p, row := range t.rows {
		for i, pos := range shared {
			b[i] = row[t.colIndex[cols[pos]]]
		}
		score := pearson(a, b)
		if best < 0 || score > bestScore {
			best = p
			bestScore = score
		}
	}
	return t.names[best], slices.Clone(t.rows[best]), nil
}

// Coverage maps matrix columns through the alias map and reports which map
// onto canonical profile columns, plus the matched fraction. At or above
// CoverageThreshold the caller may skip re-weighting and use the matrix
// columns directly.
func (t *Table) Coverage(cols []string, aliases AliasMap) (map[string]string, float64) {
	matched := make(map[string]string)
	for _, c := range cols {
		canonical := aliases.Canonical(c)
		if _, ok := t.colIndex[canonical]; ok {
			matched[c] = canonical
		}
	}
	if len(cols) == 0 {
		return matched, 0
	}
	return matched, float64(len(matched)) / float64(len(cols))
}

package lingmatch

import (
	"github.com/hupe1980/lingmatch/dtm"
	"github.com/hupe1980/lingmatch/metric"
)

// Table is a flat similarity result: one labeled row per compared
// observation (or composite group), one value per requested metric.
type Table struct {
	Labels  []string
	Metrics []metric.Metric
	Values  [][]float64
}

// GroupResult holds the result rows produced inside one split.
type GroupResult struct {
	Label string
	Rows  []metric.Row
}

// SimilarityResult is either a flat table aligned with the input rows, a
// nested structure keyed by split (pairwise-in-groups and sequential modes),
// or one table per nesting depth (all-levels grouping).
type SimilarityResult struct {
	Metrics []metric.Metric
	Flat    *Table
	Groups  []GroupResult
	Levels  []*Table
}

// Output is the assembled result of one Match call.
type Output struct {
	// DTM is the unmodified raw feature matrix.
	DTM *dtm.Matrix
	// Processed is the fully processed matrix metrics were computed on.
	Processed *dtm.Matrix
	// CompType is a human-readable descriptor of the resolved comparison.
	CompType string
	// Comp is the resolved baseline value.
	Comp any
	// Group is a human-readable descriptor of the resolved grouping.
	Group string
	// Sim is the similarity result.
	Sim *SimilarityResult
	// Warnings lists the non-fatal integrity issues recovered during the
	// call.
	Warnings []string
}

func newTable(rows []metric.Row, metrics []metric.Metric) *Table {
	t := &Table{
		Labels:  make([]string, len(rows)),
		Metrics: metrics,
		Values:  make([][]float64, len(rows)),
	}
	for i, r := range rows {
		t.Labels[i] = r.Label
		t.Values[i] = r.Values
	}
	return t
}

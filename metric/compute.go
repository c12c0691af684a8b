package metric

import (
	"fmt"

	"github.com/hupe1980/lingmatch/dtm"
)

// Row is one comparison result: a label plus one value per requested metric,
// in the order the metrics were requested.
type Row struct {
	Label  string
	Values []float64
}

// TurnPair is one adjacent-turn comparison. A and B are the relative row
// positions (within the compared slice) of the first row of each turn;
// callers translate them back to absolute dataset positions.
type TurnPair struct {
	A, B   int
	Values []float64
}

func providers(metrics []Metric) ([]Func, error) {
	if len(metrics) == 0 {
		return nil, fmt.Errorf("no metrics requested")
	}
	fns := make([]Func, len(metrics))
	for i, m := range metrics {
		fn, err := Provider(m)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}
	return fns, nil
}

func apply(fns []Func, a, b []float64) []float64 {
	out := make([]float64, len(fns))
	for i, fn := range fns {
		out[i] = fn(a, b)
	}
	return out
}

// Compare computes each selected row's similarity to a single baseline
// vector. A nil selection means all rows. The baseline length must match
// the matrix width.
func Compare(m *dtm.Matrix, rows []int, baseline []float64, metrics []Metric) ([]Row, error) {
	if len(baseline) != m.NumColumns() {
		return nil, fmt.Errorf("baseline has %d values for %d columns", len(baseline), m.NumColumns())
	}
	fns, err := providers(metrics)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = allRows(m)
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Label: m.Label(r), Values: apply(fns, m.Row(r), baseline)}
	}
	return out, nil
}

// PairwiseMeans computes, for each selected row, the mean of its similarities
// to every other selected row. A selection with a single row yields the
// neutral value 1 for every metric.
func PairwiseMeans(m *dtm.Matrix, rows []int, metrics []Metric) ([]Row, error) {
	fns, err := providers(metrics)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = allRows(m)
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		if len(rows) < 2 {
			out[i] = Row{Label: m.Label(r), Values: Neutral(metrics)}
			continue
		}
		sums := make([]float64, len(fns))
		for j, other := range rows {
			if j == i {
				continue
			}
			for k, fn := range fns {
				sums[k] += fn(m.Row(r), m.Row(other))
			}
		}
		for k := range sums {
			sums[k] /= float64(len(rows) - 1)
		}
		out[i] = Row{Label: m.Label(r), Values: sums}
	}
	return out, nil
}

// PairwisePairs computes one result per unordered row pair within the
// selection, labeled "a-b" using the rows' labels.
func PairwisePairs(m *dtm.Matrix, rows []int, metrics []Metric) ([]Row, error) {
	fns, err := providers(metrics)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = allRows(m)
	}
	var out []Row
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			a, b := rows[i], rows[j]
			out = append(out, Row{
				Label:  fmt.Sprintf("%s-%s", m.Label(a), m.Label(b)),
				Values: apply(fns, m.Row(a), m.Row(b)),
			})
		}
	}
	return out, nil
}

// Sequential compares adjacent speaker turns within an ordered row
// selection. Consecutive rows sharing a speaker form one turn, represented
// by the column-wise mean of its rows; each turn is compared to the next.
// The selection must contain at least two rows and two distinct speakers
// (the caller handles degenerate splits).
func Sequential(m *dtm.Matrix, rows []int, speakers []string, metrics []Metric) ([]TurnPair, error) {
	if len(speakers) != len(rows) {
		return nil, fmt.Errorf("got %d speakers for %d rows", len(speakers), len(rows))
	}
	fns, err := providers(metrics)
	if err != nil {
		return nil, err
	}
	// Turn starts: relative positions where the speaker changes.
	starts := []int{0}
	for i := 1; i < len(speakers); i++ {
		if speakers[i] != speakers[i-1] {
			starts = append(starts, i)
		}
	}
	if len(starts) < 2 {
		return nil, fmt.Errorf("need at least two speaker turns, got %d", len(starts))
	}
	profiles := make([][]float64, len(starts))
	for t, start := range starts {
		end := len(rows)
		if t+1 < len(starts) {
			end = starts[t+1]
		}
		profiles[t] = m.ColumnMeans(rows[start:end])
	}
	out := make([]TurnPair, 0, len(starts)-1)
	for t := 1; t < len(starts); t++ {
		out = append(out, TurnPair{
			A:      starts[t-1],
			B:      starts[t],
			Values: apply(fns, profiles[t-1], profiles[t]),
		})
	}
	return out, nil
}

// Neutral returns the neutral result row: 1 for every requested metric.
// Used for degenerate splits where no meaningful comparison exists.
func Neutral(metrics []Metric) []float64 {
	out := make([]float64, len(metrics))
	for i := range out {
		out[i] = 1
	}
	return out
}

func allRows(m *dtm.Matrix) []int {
	rows := make([]int, m.Rows())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

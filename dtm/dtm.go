package dtm

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoColumns is returned when a matrix is constructed without columns.
	ErrNoColumns = errors.New("matrix must have at least one column")
	// ErrRaggedRows is returned when a row's width differs from the column count.
	ErrRaggedRows = errors.New("row width differs from column count")
)

// ReduceFunc collapses one column's values (over a row selection) into a
// single number. The column-wise mean is the canonical reducer.
type ReduceFunc func(values []float64) float64

// Mean is the default reducer.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Matrix is a dense feature matrix with named columns and optional row labels.
// The zero value is not usable; construct via New or FromTexts.
type Matrix struct {
	cols     []string
	colIndex map[string]int
	rows     [][]float64
	labels   []string // empty or len(rows)
}

// New creates a matrix from column names and row data.
// Every row must have exactly len(cols) values.
func New(cols []string, rows [][]float64) (*Matrix, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRows, i, len(r), len(cols))
		}
	}
	return &Matrix{
		cols:     slices.Clone(cols),
		colIndex: idx,
		rows:     rows,
		labels:   nil,
	}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.rows) }

// Columns returns a copy of the column names in order.
func (m *Matrix) Columns() []string { return slices.Clone(m.cols) }

// NumColumns returns the number of columns.
func (m *Matrix) NumColumns() int { return len(m.cols) }

// HasColumn reports whether a column exists.
func (m *Matrix) HasColumn(name string) bool {
	_, ok := m.colIndex[name]
	return ok
}

// ColumnIndex returns the position of a column.
func (m *Matrix) ColumnIndex(name string) (int, bool) {
	i, ok := m.colIndex[name]
	return i, ok
}

// Row returns the i-th row. The returned slice is shared with the matrix;
// callers must not mutate it.
func (m *Matrix) Row(i int) []float64 { return m.rows[i] }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.rows[i][j] }

// Labels returns the row labels, or nil if none are set.
func (m *Matrix) Labels() []string {
	if len(m.labels) == 0 {
		return nil
	}
	return slices.Clone(m.labels)
}

// Label returns the label of row i, falling back to its index rendered as a
// string when no labels are set.
func (m *Matrix) Label(i int) string {
	if len(m.labels) == 0 {
		return fmt.Sprintf("%d", i)
	}
	return m.labels[i]
}

// SetLabels sets one label per row.
func (m *Matrix) SetLabels(labels []string) error {
	if len(labels) != len(m.rows) {
		return fmt.Errorf("got %d labels for %d rows", len(labels), len(m.rows))
	}
	m.labels = slices.Clone(labels)
	return nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	rows := make([][]float64, len(m.rows))
	for i, r := range m.rows {
		rows[i] = slices.Clone(r)
	}
	c := &Matrix{
		cols:     slices.Clone(m.cols),
		colIndex: make(map[string]int, len(m.cols)),
		rows:     rows,
		labels:   slices.Clone(m.labels),
	}
	for i, name := range c.cols {
		c.colIndex[name] = i
	}
	return c
}

// EnsureColumns adds any missing columns, zero-filled, and returns the names
// that were added. Existing columns keep their positions.
func (m *Matrix) EnsureColumns(names []string) []string {
	var added []string
	for _, name := range names {
		if _, ok := m.colIndex[name]; ok {
			continue
		}
		m.colIndex[name] = len(m.cols)
		m.cols = append(m.cols, name)
		added = append(added, name)
	}
	if len(added) > 0 {
		for i, r := range m.rows {
			grown := make([]float64, len(m.cols))
			copy(grown, r)
			m.rows[i] = grown
		}
	}
	return added
}

// Align returns a new matrix with exactly the given columns in the given
// order. Missing columns are zero-filled; columns not listed are left out.
func (m *Matrix) Align(cols []string) *Matrix {
	rows := make([][]float64, len(m.rows))
	for i, r := range m.rows {
		aligned := make([]float64, len(cols))
		for j, name := range cols {
			if src, ok := m.colIndex[name]; ok {
				aligned[j] = r[src]
			}
		}
		rows[i] = aligned
	}
	idx := make(map[string]int, len(cols))
	for i, name := range cols {
		idx[name] = i
	}
	return &Matrix{
		cols:     slices.Clone(cols),
		colIndex: idx,
		rows:     rows,
		labels:   slices.Clone(m.labels),
	}
}

// RenameColumns applies a name mapping to the columns. Names absent from
// the mapping are kept. Renames that would collide with an existing column
// are skipped.
func (m *Matrix) RenameColumns(mapping map[string]string) {
	for i, name := range m.cols {
		canonical, ok := mapping[name]
		if !ok || canonical == name {
			continue
		}
		if _, taken := m.colIndex[canonical]; taken {
			continue
		}
		delete(m.colIndex, name)
		m.cols[i] = canonical
		m.colIndex[canonical] = i
	}
}

// AppendRows returns a new matrix holding other's rows followed by m's rows,
// over the union of both column sets (zero-filled where absent).
func AppendRows(other, m *Matrix) *Matrix {
	union := other.Columns()
	seen := make(map[string]struct{}, len(union))
	for _, c := range union {
		seen[c] = struct{}{}
	}
	for _, c := range m.cols {
		if _, ok := seen[c]; !ok {
			union = append(union, c)
		}
	}
	top := other.Align(union)
	bottom := m.Align(union)
	rows := make([][]float64, 0, len(top.rows)+len(bottom.rows))
	rows = append(rows, top.rows...)
	rows = append(rows, bottom.rows...)
	out := &Matrix{
		cols:     top.cols,
		colIndex: top.colIndex,
		rows:     rows,
	}
	if len(other.labels) > 0 || len(m.labels) > 0 {
		labels := make([]string, 0, len(rows))
		for i := range top.rows {
			labels = append(labels, other.Label(i))
		}
		for i := range bottom.rows {
			labels = append(labels, m.Label(i))
		}
		out.labels = labels
	}
	return out
}

// SelectRows returns a new matrix holding only the given rows, in order.
func (m *Matrix) SelectRows(rows []int) *Matrix {
	sel := make([][]float64, len(rows))
	var labels []string
	if len(m.labels) > 0 {
		labels = make([]string, len(rows))
	}
	for i, r := range rows {
		sel[i] = slices.Clone(m.rows[r])
		if labels != nil {
			labels[i] = m.labels[r]
		}
	}
	idx := make(map[string]int, len(m.cols))
	for i, name := range m.cols {
		idx[name] = i
	}
	return &Matrix{cols: slices.Clone(m.cols), colIndex: idx, rows: sel, labels: labels}
}

// ExcludeRows returns a new matrix without the given rows.
func (m *Matrix) ExcludeRows(rows []int) *Matrix {
	drop := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		drop[r] = struct{}{}
	}
	keep := make([]int, 0, len(m.rows)-len(drop))
	for i := range m.rows {
		if _, skip := drop[i]; !skip {
			keep = append(keep, i)
		}
	}
	return m.SelectRows(keep)
}

// ColumnMeans returns the column-wise mean over the given rows.
// A nil selection means all rows.
func (m *Matrix) ColumnMeans(rows []int) []float64 {
	return m.Reduce(rows, Mean)
}

// Reduce applies fn to each column over the given row selection.
// A nil selection means all rows.
func (m *Matrix) Reduce(rows []int, fn ReduceFunc) []float64 {
	if rows == nil {
		rows = make([]int, len(m.rows))
		for i := range rows {
			rows[i] = i
		}
	}
	out := make([]float64, len(m.cols))
	col := make([]float64, len(rows))
	for j := range m.cols {
		for i, r := range rows {
			col[i] = m.rows[r][j]
		}
		out[j] = fn(col)
	}
	return out
}

// DropZeroColumns returns a new matrix without all-zero columns, along with
// the names that were dropped. This is the only operation that shrinks the
// column set, and only on explicit request.
func (m *Matrix) DropZeroColumns() (*Matrix, []string) {
	keep := make([]string, 0, len(m.cols))
	var dropped []string
	for j, name := range m.cols {
		zero := true
		for _, r := range m.rows {
			if r[j] != 0 {
				zero = false
				break
			}
		}
		if zero {
			dropped = append(dropped, name)
		} else {
			keep = append(keep, name)
		}
	}
	if len(dropped) == 0 {
		return m, nil
	}
	return m.Align(keep), dropped
}

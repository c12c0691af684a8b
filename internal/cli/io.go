package cli

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lingmatch"
	"github.com/hupe1980/lingmatch/dtm"
)

// readInput loads the primary input. A .csv file is parsed as a feature
// matrix; anything else is read as one text per line.
func readInput(path string) (any, error) {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return readMatrixCSV(path)
	}
	return readLines(path)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		texts = append(texts, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return texts, nil
}

// readMatrixCSV parses a feature matrix with a header row of column names.
// When the first column does not parse as numeric it is used for row labels.
func readMatrixCSV(path string) (*dtm.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("matrix file %s needs a header and at least one row", path)
	}

	header := records[0]
	labeled := false
	if _, err := strconv.ParseFloat(records[1][0], 64); err != nil {
		labeled = true
	}

	start := 0
	if labeled {
		start = 1
	}
	cols := header[start:]

	rows := make([][]float64, 0, len(records)-1)
	labels := make([]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i+1, len(rec), len(header))
		}
		if labeled {
			labels = append(labels, rec[0])
		}
		vals := make([]float64, len(cols))
		for j, field := range rec[start:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, cols[j], err)
			}
			vals[j] = v
		}
		rows = append(rows, vals)
	}

	m, err := dtm.New(cols, rows)
	if err != nil {
		return nil, err
	}
	if labeled {
		if err := m.SetLabels(labels); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// readDatasetCSV loads a CSV of auxiliary columns keyed by header name.
func readDatasetCSV(path string) (lingmatch.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset file %s is empty", path)
	}

	header := records[0]
	ds := make(lingmatch.Dataset, len(header))
	for j, name := range header {
		col := make([]string, 0, len(records)-1)
		for _, rec := range records[1:] {
			if j >= len(rec) {
				return nil, fmt.Errorf("dataset file %s has ragged rows", path)
			}
			col = append(col, rec[j])
		}
		ds[name] = col
	}

	return ds, nil
}

type matchReport struct {
	CompType string             `yaml:"compType"`
	Comp     string             `yaml:"comp,omitempty"`
	Group    string             `yaml:"group,omitempty"`
	Metrics  []string           `yaml:"metrics"`
	Warnings []string           `yaml:"warnings,omitempty"`
	Flat     []reportRow        `yaml:"results,omitempty"`
	Groups   []reportGroup      `yaml:"groups,omitempty"`
	Levels   []reportLevelTable `yaml:"levels,omitempty"`
}

type reportRow struct {
	Label  string             `yaml:"label"`
	Values map[string]float64 `yaml:"values"`
}

type reportGroup struct {
	Label string      `yaml:"label"`
	Rows  []reportRow `yaml:"rows"`
}

type reportLevelTable struct {
	Depth int         `yaml:"depth"`
	Rows  []reportRow `yaml:"rows"`
}

func buildReport(out *lingmatch.Output) *matchReport {
	r := &matchReport{
		CompType: out.CompType,
		Group:    out.Group,
		Warnings: out.Warnings,
	}
	switch v := out.Comp.(type) {
	case nil:
	case string:
		r.Comp = v
	case []string:
		r.Comp = strings.Join(v, ", ")
	case *dtm.Matrix:
		r.Comp = fmt.Sprintf("matrix[%dx%d]", v.Rows(), v.NumColumns())
	default:
		r.Comp = fmt.Sprintf("%v", v)
	}
	for _, m := range out.Sim.Metrics {
		r.Metrics = append(r.Metrics, m.String())
	}

	if out.Sim.Flat != nil {
		r.Flat = tableRows(out.Sim.Flat)
	}
	for _, g := range out.Sim.Groups {
		rg := reportGroup{Label: g.Label}
		for _, row := range g.Rows {
			rg.Rows = append(rg.Rows, reportRow{Label: row.Label, Values: metricMap(out, row.Values)})
		}
		r.Groups = append(r.Groups, rg)
	}
	for depth, t := range out.Sim.Levels {
		r.Levels = append(r.Levels, reportLevelTable{Depth: depth + 1, Rows: tableRows(t)})
	}

	return r
}

func tableRows(t *lingmatch.Table) []reportRow {
	rows := make([]reportRow, 0, len(t.Labels))
	for i, label := range t.Labels {
		vals := make(map[string]float64, len(t.Metrics))
		for j, m := range t.Metrics {
			vals[m.String()] = t.Values[i][j]
		}
		rows = append(rows, reportRow{Label: label, Values: vals})
	}
	return rows
}

func metricMap(out *lingmatch.Output, values []float64) map[string]float64 {
	vals := make(map[string]float64, len(out.Sim.Metrics))
	for j, m := range out.Sim.Metrics {
		if j < len(values) {
			vals[m.String()] = values[j]
		}
	}
	return vals
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeCSV emits the flat results table. Nested group results are flattened
// with the group label prefixed onto each row label.
func writeCSV(w io.Writer, out *lingmatch.Output) error {
	cw := csv.NewWriter(w)

	header := []string{"label"}
	for _, m := range out.Sim.Metrics {
		header = append(header, m.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	writeRow := func(label string, values []float64) error {
		rec := make([]string, 0, len(values)+1)
		rec = append(rec, label)
		for _, v := range values {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		return cw.Write(rec)
	}

	if out.Sim.Flat != nil {
		for i, label := range out.Sim.Flat.Labels {
			if err := writeRow(label, out.Sim.Flat.Values[i]); err != nil {
				return err
			}
		}
	}
	for _, g := range out.Sim.Groups {
		for _, row := range g.Rows {
			if err := writeRow(g.Label+"/"+row.Label, row.Values); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

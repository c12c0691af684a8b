package lingmatch

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/lingmatch/dtm"
	"github.com/hupe1980/lingmatch/metric"
	"github.com/hupe1980/lingmatch/profile"
)

// Engine computes similarity scores. The baseline-profile table and column
// alias map are immutable configuration fixed at construction; per-call
// state never escapes a call, so an Engine is safe for concurrent use.
type Engine struct {
	profiles         *profile.Table
	aliases          profile.AliasMap
	logger           *Logger
	metricsCollector MetricsCollector
}

// New creates an Engine. Without options it carries the built-in profile
// table and alias map, no logging, and no metrics collection.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return &Engine{
		profiles:         o.profiles,
		aliases:          o.aliases,
		logger:           o.logger,
		metricsCollector: o.metricsCollector,
	}
}

// Match runs one comparison: it resolves the input and every argument,
// classifies the comparison, normalizes grouping, reconciles columns,
// dispatches the requested metrics, and assembles the aligned output.
//
// input may be a *dtm.Matrix, a slice of raw texts, or a path to a text
// file (one document per line). The call is fully synchronous; fatal
// configuration or data errors abort with no partial result, while
// integrity issues are recovered locally and surfaced in Output.Warnings.
func (e *Engine) Match(input any, optFns ...MatchOption) (*Output, error) {
	start := time.Now()
	out, err := e.match(input, applyMatchOptions(optFns))
	rows := 0
	compType := ""
	if out != nil {
		rows = out.DTM.Rows()
		compType = out.CompType
	}
	e.metricsCollector.RecordMatch(rows, time.Since(start), err)
	e.logger.LogMatch(rows, compType, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) match(input any, o matchOptions) (*Output, error) {
	raw, err := e.resolveInput(input)
	if err != nil {
		return nil, err
	}
	work := raw.Clone()

	var warnings []string
	warn := func(msg string) {
		warnings = append(warnings, msg)
		e.logger.LogWarning(msg)
	}

	levels, err := e.resolveGroups(o.groups, o.data, o.compData, work.Rows())
	if err != nil {
		return nil, err
	}
	groups := &grouping{levels: levels, allLevels: o.allLevels}

	e.applyOrder(o, work, groups, warn)

	// Alias short-circuit: when the matrix columns already cover the
	// canonical profile columns, rename them and use them directly.
	if matched, cov := e.profiles.Coverage(work.Columns(), e.aliases); cov >= profile.CoverageThreshold {
		work.RenameColumns(matched)
		e.logger.Debug("alias short-circuit applied", "coverage", cov)
	}

	metrics, err := selectMetrics(o)
	if err != nil {
		return nil, err
	}

	comp, texts, err := e.classify(o.comp, classifyInput{
		matrix:            work,
		groupSupplied:     len(o.groups) > 0,
		compDataSupplied:  o.compData != nil,
		compGroupSupplied: o.compGroup != nil,
		compSupplied:      o.compSet,
		data:              o.data,
		compData:          o.compData,
	})
	if err != nil {
		return nil, err
	}

	st := &matchState{
		m:       work,
		comp:    comp,
		groups:  groups,
		metrics: metrics,
		warn:    warn,
	}

	if len(texts) > 0 {
		// Raw comparison texts become rows appended ahead of the input;
		// the resulting leading indices are the selection.
		if comp, err = e.prependTexts(st, texts); err != nil {
			return nil, err
		}
		st.comp = comp
	}
	e.logger.LogClassify(comp.Descriptor(), len(levels))

	if comp.Kind == CompSelection && st.baseline == nil {
		if comp.Selection.IsEmpty() {
			return nil, configErrorf("comparison selects no rows")
		}
		if int(comp.Selection.GetCardinality()) == st.m.Rows() {
			return nil, configErrorf("comparison selects every row, leaving no input")
		}
		e.exciseSelection(st)
	}
	if comp.Kind == CompProfile {
		base, err := dtm.New(e.profiles.Columns(), [][]float64{comp.Baseline})
		if err != nil {
			return nil, err
		}
		st.baseline = base
	}
	if comp.Kind == CompMatrix {
		st.baseline = comp.Matrix
	}

	if o.drop {
		dropped, err := e.dropZero(st)
		if err != nil {
			return nil, err
		}
		if len(dropped) > 0 {
			e.logger.Debug("zero columns dropped", "columns", dropped)
		}
	}

	if st.baseline != nil {
		m2, b2, err := reconcileColumns(st.m, st.baseline, warn)
		if err != nil {
			return nil, err
		}
		st.m, st.baseline = m2, b2
	}

	if o.compGroup != nil && st.baseline != nil {
		if err := e.bindCompGroup(st, o); err != nil {
			return nil, err
		}
	}

	sim, err := e.dispatch(st)
	if err != nil {
		return nil, err
	}

	return &Output{
		DTM:       raw,
		Processed: st.m,
		CompType:  comp.Descriptor(),
		Comp:      comp.resolvedValue(),
		Group:     groups.descriptor(),
		Sim:       sim,
		Warnings:  warnings,
	}, nil
}

// resolveInput converts the input argument into a raw feature matrix.
func (e *Engine) resolveInput(input any) (*dtm.Matrix, error) {
	switch v := input.(type) {
	case *dtm.Matrix:
		if v == nil || v.Rows() == 0 {
			return nil, configErrorf("input matrix is empty")
		}
		return v, nil
	case []string:
		if len(v) == 0 {
			return nil, configErrorf("no input texts")
		}
		m, err := dtm.FromTexts(v)
		if err != nil {
			return nil, dataError(err)
		}
		return m, nil
	case string:
		data, err := os.ReadFile(v)
		if err != nil {
			return nil, configErrorf("read input %s: %v", v, err)
		}
		var texts []string
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			texts = append(texts, line)
		}
		return e.resolveInput(texts)
	default:
		return nil, configErrorf("unsupported input type %T", input)
	}
}

// selectMetrics applies the precedence: explicit metrics, then the Type
// preset, then the cosine default.
func selectMetrics(o matchOptions) ([]metric.Metric, error) {
	if len(o.metrics) > 0 {
		return o.metrics, nil
	}
	switch strings.ToLower(o.preset) {
	case "":
		return []metric.Metric{metric.Cosine}, nil
	case "lsm":
		return []metric.Metric{metric.Canberra}, nil
	case "lsa":
		return []metric.Metric{metric.Cosine}, nil
	case "default":
		return metric.All, nil
	default:
		return nil, configErrorf("unknown type preset %q", o.preset)
	}
}

// applyOrder reorders rows and all grouping vectors together. An invalid
// ordering is skipped with a warning, original order retained.
func (e *Engine) applyOrder(o matchOptions, work *dtm.Matrix, groups *grouping, warn func(string)) {
	if o.order == nil {
		return
	}
	v := o.order
	if ref, ok := v.(string); ok {
		resolved, src, err := resolveRef(ref,
			DatasetSource("data", o.data),
			DatasetSource("comp.data", o.compData),
		)
		if err != nil {
			warn(fmt.Sprintf("ordering reference %q not found, original order retained", ref))
			return
		}
		e.logger.LogResolve(ref, src)
		v = resolved
	}
	perm, ok := toPermutation(v, work.Rows())
	if !ok {
		warn("invalid ordering argument, original order retained")
		return
	}
	reordered := work.SelectRows(perm)
	*work = *reordered
	for i := range groups.levels {
		values := make([]string, len(perm))
		for j, p := range perm {
			values[j] = groups.levels[i].values[p]
		}
		groups.levels[i].values = values
	}
}

func toPermutation(v any, rows int) ([]int, bool) {
	var perm []int
	switch vs := v.(type) {
	case []int:
		perm = vs
	case []float64:
		perm = make([]int, len(vs))
		for i, f := range vs {
			perm[i] = int(f)
			if float64(perm[i]) != f {
				return nil, false
			}
		}
	default:
		return nil, false
	}
	if len(perm) != rows {
		return nil, false
	}
	seen := make(map[int]struct{}, len(perm))
	for _, p := range perm {
		if p < 0 || p >= rows {
			return nil, false
		}
		if _, dup := seen[p]; dup {
			return nil, false
		}
		seen[p] = struct{}{}
	}
	return perm, true
}

// prependTexts converts raw comparison texts to a feature matrix appended
// ahead of the working matrix, then excises them as the baseline so that
// both sides share one column space.
func (e *Engine) prependTexts(st *matchState, texts []string) (*CompSpec, error) {
	textM, err := dtm.FromTexts(texts)
	if err != nil {
		return nil, dataError(err)
	}
	combined := dtm.AppendRows(textM, st.m)
	lead := make([]int, textM.Rows())
	for i := range lead {
		lead[i] = i
	}
	st.baseline = combined.SelectRows(lead)
	st.m = combined.ExcludeRows(lead)
	sel := roaring.New()
	for _, r := range lead {
		sel.AddInt(r)
	}
	return &CompSpec{Kind: CompSelection, Selection: sel}, nil
}

// exciseSelection designates selected input rows as the baseline and
// removes them from the working matrix; the remainder is the input.
// Grouping vectors shrink in step.
func (e *Engine) exciseSelection(st *matchState) {
	sel := st.comp.Selection.ToArray()
	rows := make([]int, len(sel))
	selected := make(map[int]struct{}, len(sel))
	for i, s := range sel {
		rows[i] = int(s)
		selected[int(s)] = struct{}{}
	}
	st.baseline = st.m.SelectRows(rows)
	st.m = st.m.ExcludeRows(rows)
	for i := range st.groups.levels {
		kept := make([]string, 0, len(st.groups.levels[i].values)-len(rows))
		for j, v := range st.groups.levels[i].values {
			if _, drop := selected[j]; !drop {
				kept = append(kept, v)
			}
		}
		st.groups.levels[i].values = kept
	}
}

// bindCompGroup resolves the comparison-side grouping and builds one
// baseline vector per comparison group level.
func (e *Engine) bindCompGroup(st *matchState, o matchOptions) error {
	v := o.compGroup
	if ref, ok := v.(string); ok {
		resolved, src, err := resolveRef(ref,
			DatasetSource("comp.data", o.compData),
			DatasetSource("data", o.data),
		)
		if err != nil {
			return &ConfigurationError{Reason: err.Error(), cause: err.(*NotFoundError)}
		}
		e.logger.LogResolve(ref, src)
		v = resolved
	}
	labels, err := toLabels(v)
	if err != nil {
		return configErrorf("comparison group: %v", err)
	}
	if len(labels) != st.baseline.Rows() {
		return configErrorf("comparison group has %d values for %d baseline rows", len(labels), st.baseline.Rows())
	}
	st.compBaselines = make(map[string][]float64)
	for _, sp := range splitsOf(labels, nil) {
		st.compBaselines[sp.label] = st.baseline.Reduce(sp.rows, st.reduceFn())
	}
	return nil
}

// dropZero removes all-zero columns, failing when nothing remains.
func (e *Engine) dropZero(st *matchState) ([]string, error) {
	m, dropped := st.m.DropZeroColumns()
	if m.NumColumns() == 0 {
		return nil, dataError(ErrAllColumnsZero)
	}
	st.m = m
	return dropped, nil
}

package lingmatch

import (
	"fmt"
	"strings"

	"github.com/hupe1980/lingmatch/dtm"
	"github.com/hupe1980/lingmatch/metric"
)

// matchState is the working state of one Match call. It is never shared
// across calls.
type matchState struct {
	m        *dtm.Matrix // processed working matrix
	comp     *CompSpec
	groups   *grouping
	metrics  []metric.Metric
	baseline *dtm.Matrix // resolved baseline matrix (profile/selection/external)

	// compBaselines maps group labels to per-group baseline vectors when a
	// comparison-group binding exists.
	compBaselines map[string][]float64

	warn func(string)
}

// reduceFn returns the comparison's reducer, defaulting to the column mean.
func (st *matchState) reduceFn() dtm.ReduceFunc {
	if st.comp.Reduce != nil {
		return st.comp.Reduce
	}
	return dtm.Mean
}

// dispatch walks the decision table: sequential mode first, then nested
// multi-level grouping, then the flat/collapsed cases.
func (e *Engine) dispatch(st *matchState) (*SimilarityResult, error) {
	if st.comp.Kind == CompSequential {
		return e.dispatchSequential(st)
	}
	if st.groups.allLevels && len(st.groups.levels) > 1 {
		return e.dispatchLevels(st)
	}
	var labels []string
	if !st.groups.empty() {
		labels = st.groups.composite(0)
	}
	return e.dispatchScope(st, labels)
}

// dispatchLevels repeats the computation at each nesting depth, expanding
// outward: depth d groups rows by the composite of the first d vectors,
// composite labels accumulating the enclosing level labels.
func (e *Engine) dispatchLevels(st *matchState) (*SimilarityResult, error) {
	res := &SimilarityResult{Metrics: st.metrics}
	for depth := 1; depth <= len(st.groups.levels); depth++ {
		labels := st.groups.composite(depth)
		var sub *SimilarityResult
		var err error
		if st.baseline == nil && st.comp.Kind == CompPairwise {
			// Pairwise-in-groups flattens to per-row means here so every
			// depth contributes one aligned column set.
			sub, err = e.dispatchPairwiseMeans(st, labels)
		} else {
			sub, err = e.dispatchScope(st, labels)
		}
		if err != nil {
			return nil, err
		}
		if sub.Flat == nil {
			return nil, fmt.Errorf("internal: level dispatch produced no flat table")
		}
		res.Levels = append(res.Levels, sub.Flat)
	}
	return res, nil
}

// dispatchPairwiseMeans computes the per-row mean pairwise similarity inside
// each split, scattered back into input order.
func (e *Engine) dispatchPairwiseMeans(st *matchState, labels []string) (*SimilarityResult, error) {
	out := make([]metric.Row, st.m.Rows())
	for _, sp := range splitsOf(labels, nil) {
		rows, err := metric.PairwiseMeans(st.m, sp.rows, st.metrics)
		if err != nil {
			return nil, err
		}
		for i, r := range sp.rows {
			out[r] = rows[i]
		}
	}
	return &SimilarityResult{Metrics: st.metrics, Flat: newTable(out, st.metrics)}, nil
}

// dispatchScope computes one column set for the given per-row group labels
// (nil means no grouping).
func (e *Engine) dispatchScope(st *matchState, labels []string) (*SimilarityResult, error) {
	switch {
	case st.baseline != nil:
		return e.dispatchBaseline(st, labels)
	case st.comp.Kind == CompPairwise:
		return e.dispatchPairwise(st, labels)
	default: // CompMean, CompAggregate
		return e.dispatchReduced(st, labels)
	}
}

// dispatchReduced compares each row to the reduced profile of its scope:
// the whole input, or its own group.
func (e *Engine) dispatchReduced(st *matchState, labels []string) (*SimilarityResult, error) {
	if labels == nil {
		base := st.m.Reduce(nil, st.reduceFn())
		rows, err := metric.Compare(st.m, nil, base, st.metrics)
		if err != nil {
			return nil, err
		}
		return &SimilarityResult{Metrics: st.metrics, Flat: newTable(rows, st.metrics)}, nil
	}
	out := make([]metric.Row, st.m.Rows())
	for _, sp := range splitsOf(labels, nil) {
		base := st.m.Reduce(sp.rows, st.reduceFn())
		rows, err := metric.Compare(st.m, sp.rows, base, st.metrics)
		if err != nil {
			return nil, err
		}
		for i, r := range sp.rows {
			out[r] = rows[i]
		}
	}
	return &SimilarityResult{Metrics: st.metrics, Flat: newTable(out, st.metrics)}, nil
}

// dispatchPairwise compares rows against each other: globally, or
// independently inside each group. Multiple groups produce the nested
// pair-level structure; a single scope flattens to per-row means.
func (e *Engine) dispatchPairwise(st *matchState, labels []string) (*SimilarityResult, error) {
	if labels == nil {
		rows, err := metric.PairwiseMeans(st.m, nil, st.metrics)
		if err != nil {
			return nil, err
		}
		return &SimilarityResult{Metrics: st.metrics, Flat: newTable(rows, st.metrics)}, nil
	}
	splits := splitsOf(labels, nil)
	if len(splits) == 1 {
		rows, err := metric.PairwiseMeans(st.m, splits[0].rows, st.metrics)
		if err != nil {
			return nil, err
		}
		return &SimilarityResult{Metrics: st.metrics, Flat: newTable(rows, st.metrics)}, nil
	}
	res := &SimilarityResult{Metrics: st.metrics}
	for _, sp := range splits {
		gr := GroupResult{Label: sp.label}
		if len(sp.rows) < 2 {
			// A split with a single row has no pair to form; report the
			// neutral row instead of failing.
			gr.Rows = []metric.Row{{Label: st.m.Label(sp.rows[0]), Values: metric.Neutral(st.metrics)}}
		} else {
			rows, err := metric.PairwisePairs(st.m, sp.rows, st.metrics)
			if err != nil {
				return nil, err
			}
			gr.Rows = rows
		}
		res.Groups = append(res.Groups, gr)
	}
	return res, nil
}

// dispatchBaseline compares rows against a fixed baseline source (profile,
// selection, or external matrix). With a comparison-group binding each
// group gets its own baseline row; rows in groups absent from the binding
// are excluded with a warning. A multi-row baseline without a binding is
// reduced by the mean rule.
func (e *Engine) dispatchBaseline(st *matchState, labels []string) (*SimilarityResult, error) {
	if st.compBaselines != nil && labels != nil {
		out := make([]metric.Row, 0, st.m.Rows())
		var dropped []string
		for _, sp := range splitsOf(labels, nil) {
			base, ok := st.compBaselines[sp.label]
			if !ok {
				dropped = append(dropped, sp.label)
				continue
			}
			rows, err := metric.Compare(st.m, sp.rows, base, st.metrics)
			if err != nil {
				return nil, err
			}
			out = append(out, rows...)
		}
		if len(dropped) > 0 {
			st.warn(fmt.Sprintf("grouping levels missing from comparison group: %s", strings.Join(dropped, ", ")))
		}
		return &SimilarityResult{Metrics: st.metrics, Flat: newTable(out, st.metrics)}, nil
	}

	base := st.baseline.Row(0)
	if st.baseline.Rows() > 1 {
		base = st.baseline.Reduce(nil, st.reduceFn())
	}
	rows, err := metric.Compare(st.m, nil, base, st.metrics)
	if err != nil {
		return nil, err
	}
	return &SimilarityResult{Metrics: st.metrics, Flat: newTable(rows, st.metrics)}, nil
}

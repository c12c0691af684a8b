package lingmatch

import (
	"fmt"

	"github.com/hupe1980/lingmatch/metric"
)

// dispatchSequential handles accommodation analysis over adjacent speaker
// turns. The innermost grouping vector is the speaker identity; any outer
// vectors split the rows into independent conversations. Rows are assumed
// to already be in temporal order (Order reorders beforehand).
func (e *Engine) dispatchSequential(st *matchState) (*SimilarityResult, error) {
	if st.groups.empty() {
		return nil, configErrorf("sequential comparison requires a grouping vector carrying speaker identity")
	}
	speakers := st.groups.levels[len(st.groups.levels)-1].values

	var splits []split
	if len(st.groups.levels) > 1 {
		outer := &grouping{levels: st.groups.levels[:len(st.groups.levels)-1]}
		splits = splitsOf(outer.composite(0), nil)
	} else {
		all := split{label: "all"}
		for i := 0; i < st.m.Rows(); i++ {
			all.rows = append(all.rows, i)
		}
		splits = []split{all}
	}

	res := &SimilarityResult{Metrics: st.metrics}
	for _, sp := range splits {
		distinct := make(map[string]struct{})
		sub := make([]string, len(sp.rows))
		for i, r := range sp.rows {
			sub[i] = speakers[r]
			distinct[speakers[r]] = struct{}{}
		}
		// Degenerate split: nothing to compare adjacently, report the
		// neutral row without error or warning.
		if len(sp.rows) < 2 || len(distinct) < 2 {
			res.Groups = append(res.Groups, GroupResult{
				Label: sp.label,
				Rows:  []metric.Row{{Label: sp.label, Values: metric.Neutral(st.metrics)}},
			})
			continue
		}
		pairs, err := metric.Sequential(st.m, sp.rows, sub, st.metrics)
		if err != nil {
			return nil, err
		}
		gr := GroupResult{Label: sp.label}
		for _, p := range pairs {
			// Translate relative turn positions back to absolute dataset
			// row positions, so labels always reference the original rows
			// regardless of which split produced them.
			a, b := sp.rows[p.A], sp.rows[p.B]
			gr.Rows = append(gr.Rows, metric.Row{
				Label:  fmt.Sprintf("%s-%s", st.m.Label(a), st.m.Label(b)),
				Values: p.Values,
			})
		}
		res.Groups = append(res.Groups, gr)
	}
	return res, nil
}

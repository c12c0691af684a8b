package lingmatch

import (
	"fmt"
	"strings"

	"github.com/hupe1980/lingmatch/dtm"
)

// reconcileColumns unifies the column space of the working matrix and the
// baseline before any metric computation: columns present on only one side
// are added to the other, zero-filled. Partial overlap is recovered with a
// warning naming the asymmetric columns; no overlap at all is fatal.
// Row counts never change here.
func reconcileColumns(m, baseline *dtm.Matrix, warn func(string)) (*dtm.Matrix, *dtm.Matrix, error) {
	var common, mOnly []string
	for _, c := range m.Columns() {
		if baseline.HasColumn(c) {
			common = append(common, c)
		} else {
			mOnly = append(mOnly, c)
		}
	}
	var baseOnly []string
	for _, c := range baseline.Columns() {
		if !m.HasColumn(c) {
			baseOnly = append(baseOnly, c)
		}
	}
	if len(common) == 0 {
		return nil, nil, dataError(ErrNoCommonColumns)
	}
	if len(mOnly) > 0 {
		warn(fmt.Sprintf("baseline missing input columns: %s", strings.Join(mOnly, ", ")))
	}
	if len(baseOnly) > 0 {
		warn(fmt.Sprintf("input missing baseline columns: %s", strings.Join(baseOnly, ", ")))
	}
	union := append(m.Columns(), baseOnly...)
	return m.Align(union), baseline.Align(union), nil
}

package lingmatch

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/lingmatch/dtm"
)

// CompKind enumerates the comparison-mode variants a raw comparison value
// classifies into.
type CompKind int

const (
	// CompPairwise compares every row against every other row.
	CompPairwise CompKind = iota
	// CompMean compares rows against a per-scope column-wise mean.
	CompMean
	// CompAggregate compares rows against an arbitrary per-scope reduction.
	CompAggregate
	// CompSequential compares adjacent speaker turns within ordered rows.
	CompSequential
	// CompProfile compares rows against a named baseline-profile row.
	CompProfile
	// CompSelection uses selected input rows as the baseline and the
	// remainder as the input.
	CompSelection
	// CompMatrix compares rows against an independently supplied matrix,
	// aligned by shared column names.
	CompMatrix
)

func (k CompKind) String() string {
	switch k {
	case CompPairwise:
		return "pairwise"
	case CompMean:
		return "mean"
	case CompAggregate:
		return "aggregate"
	case CompSequential:
		return "sequential"
	case CompProfile:
		return "profile"
	case CompSelection:
		return "selection"
	case CompMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Reducer is a named column reducer usable as a comparison value.
type Reducer struct {
	Name string
	Fn   dtm.ReduceFunc
}

// CompSpec is the classified comparison specification. It is resolved
// once by the classifier; downstream dispatch never re-inspects the raw
// comparison value.
type CompSpec struct {
	Kind CompKind

	// Reduce and ReduceName are set for CompMean and CompAggregate.
	Reduce     dtm.ReduceFunc
	ReduceName string

	// Profile, Auto, and Baseline are set for CompProfile.
	Profile  string
	Auto     bool
	Baseline []float64

	// Selection is set for CompSelection: the baseline rows, as positions
	// into the working matrix.
	Selection *roaring.Bitmap

	// Matrix is set for CompMatrix.
	Matrix *dtm.Matrix
}

// Descriptor renders the resolved comparison for the output contract.
func (c *CompSpec) Descriptor() string {
	switch c.Kind {
	case CompAggregate:
		if c.ReduceName != "" {
			return c.ReduceName
		}
		return "aggregate"
	case CompProfile:
		if c.Auto {
			return "auto: " + c.Profile
		}
		return c.Profile
	case CompSelection:
		return fmt.Sprintf("selection[%d]", c.Selection.GetCardinality())
	default:
		return c.Kind.String()
	}
}

// resolvedValue is the caller-facing resolved baseline value for the output
// contract.
func (c *CompSpec) resolvedValue() any {
	switch c.Kind {
	case CompProfile:
		return c.Baseline
	case CompSelection:
		return c.Selection.ToArray()
	case CompMatrix:
		return c.Matrix
	default:
		return c.Descriptor()
	}
}

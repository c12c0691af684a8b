package lingmatch

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lingmatch/dtm"
	"github.com/hupe1980/lingmatch/metric"
	"github.com/hupe1980/lingmatch/profile"
	"github.com/hupe1980/lingmatch/testutil"
)

func newMatrix(t *testing.T, cols []string, rows [][]float64) *dtm.Matrix {
	t.Helper()
	m, err := dtm.New(cols, rows)
	require.NoError(t, err)
	return m
}

func TestMatchDefaultPairwise(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{1, 0},
		{0, 1},
	})

	out, err := e.Match(m)
	require.NoError(t, err)

	assert.Equal(t, "pairwise", out.CompType)
	assert.Empty(t, out.Group)
	assert.Equal(t, []metric.Metric{metric.Cosine}, out.Sim.Metrics)

	require.NotNil(t, out.Sim.Flat)
	require.Len(t, out.Sim.Flat.Values, 3)
	assert.InDelta(t, 0.5, out.Sim.Flat.Values[0][0], 1e-9)
	assert.InDelta(t, 0.5, out.Sim.Flat.Values[1][0], 1e-9)
	assert.InDelta(t, 0, out.Sim.Flat.Values[2][0], 1e-9)
}

func TestMatchGroupMean(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{3, 0},
		{0, 2},
		{0, 2},
	})

	out, err := e.Match(m,
		Group([]string{"g1", "g1", "g2", "g2"}),
		Metrics(metric.Canberra),
	)
	require.NoError(t, err)

	// Grouping without an explicit comparison means rows-vs-group-mean.
	assert.Equal(t, "mean", out.CompType)
	assert.Equal(t, "group1", out.Group)

	require.NotNil(t, out.Sim.Flat)
	require.Len(t, out.Sim.Flat.Values, 4)
	// g1 mean {2, 0}: 1 - |1-2|/3 and 1 - |3-2|/5.
	assert.InDelta(t, 2.0/3.0, out.Sim.Flat.Values[0][0], 1e-9)
	assert.InDelta(t, 0.8, out.Sim.Flat.Values[1][0], 1e-9)
	// g2 rows equal their mean.
	assert.InDelta(t, 1, out.Sim.Flat.Values[2][0], 1e-9)
	assert.InDelta(t, 1, out.Sim.Flat.Values[3][0], 1e-9)
}

func TestMatchCompositeGroupLabels(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}, {3}, {4}})

	out, err := e.Match(m,
		Comparison("pairwise"),
		Group([]string{"a", "a", "b", "b"}, []string{"x", "y", "x", "y"}),
	)
	require.NoError(t, err)

	// Two grouping vectors collapse into ordered composite labels.
	assert.Equal(t, "group1 * group2", out.Group)
	require.Len(t, out.Sim.Groups, 4)
	labels := make([]string, len(out.Sim.Groups))
	for i, g := range out.Sim.Groups {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{"a x", "a y", "b x", "b y"}, labels)

	// Singleton splits report the neutral value instead of failing.
	for _, g := range out.Sim.Groups {
		require.Len(t, g.Rows, 1)
		assert.Equal(t, []float64{1}, g.Rows[0].Values)
	}
}

func TestMatchPairwiseWithinGroups(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{1, 0},
		{0, 1},
		{1, 1},
	})
	require.NoError(t, m.SetLabels([]string{"r1", "r2", "r3", "r4"}))

	out, err := e.Match(m, Group([]string{"g1", "g1", "g2", "g2"}), Comparison("pairwise"))
	require.NoError(t, err)

	require.Len(t, out.Sim.Groups, 2)
	assert.Equal(t, "g1", out.Sim.Groups[0].Label)
	require.Len(t, out.Sim.Groups[0].Rows, 1)
	assert.Equal(t, "r1-r2", out.Sim.Groups[0].Rows[0].Label)
	assert.InDelta(t, 1, out.Sim.Groups[0].Rows[0].Values[0], 1e-9)

	assert.Equal(t, "g2", out.Sim.Groups[1].Label)
	assert.Equal(t, "r3-r4", out.Sim.Groups[1].Rows[0].Label)
}

func TestMatchAllLevels(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{3, 0},
		{0, 2},
		{0, 4},
	})

	out, err := e.Match(m,
		Group([]string{"a", "a", "b", "b"}, []string{"x", "y", "x", "y"}),
		AllLevels(true),
	)
	require.NoError(t, err)

	// One flat table per nesting depth, outermost first.
	require.Len(t, out.Sim.Levels, 2)
	assert.Nil(t, out.Sim.Flat)
	require.Len(t, out.Sim.Levels[0].Values, 4)

	// At full depth every composite group is a single row, identical to
	// its own mean.
	for _, vals := range out.Sim.Levels[1].Values {
		assert.InDelta(t, 1, vals[0], 1e-9)
	}
}

func TestMatchAllLevelsPairwise(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{1, 0},
		{0, 1},
		{1, 1},
	})

	out, err := e.Match(m,
		Comparison("pairwise"),
		Group([]string{"a", "a", "b", "b"}, []string{"x", "y", "x", "y"}),
		AllLevels(true),
		Metrics(metric.Cosine),
	)
	require.NoError(t, err)

	require.Len(t, out.Sim.Levels, 2)
	assert.Nil(t, out.Sim.Flat)
	assert.Nil(t, out.Sim.Groups)

	// Depth 1 flattens pairwise-in-groups to per-row means, in input order.
	depth1 := out.Sim.Levels[0]
	require.Len(t, depth1.Values, 4)
	assert.InDelta(t, 1, depth1.Values[0][0], 1e-9)
	assert.InDelta(t, 1, depth1.Values[1][0], 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, depth1.Values[2][0], 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, depth1.Values[3][0], 1e-9)

	// At full depth every composite group is a singleton, so each row gets
	// the neutral value.
	for _, vals := range out.Sim.Levels[1].Values {
		assert.InDelta(t, 1, vals[0], 1e-9)
	}
}

func TestMatchProfileComparison(t *testing.T) {
	table, err := profile.New(
		[]string{"formal", "casual"},
		[]string{"f1", "f2"},
		[][]float64{{1, 0}, {0, 1}},
	)
	require.NoError(t, err)
	e := New(WithProfiles(table))

	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{2, 0},
		{0, 5},
	})

	out, err := e.Match(m, Comparison("formal"))
	require.NoError(t, err)

	assert.Equal(t, "formal", out.CompType)
	assert.Equal(t, []float64{1, 0}, out.Comp)
	require.Len(t, out.Sim.Flat.Values, 2)
	assert.InDelta(t, 1, out.Sim.Flat.Values[0][0], 1e-9)
	assert.InDelta(t, 0, out.Sim.Flat.Values[1][0], 1e-9)
}

func TestMatchAutoProfile(t *testing.T) {
	table, err := profile.New(
		[]string{"formal", "casual"},
		[]string{"f1", "f2", "f3"},
		[][]float64{{9, 1, 1}, {1, 9, 5}},
	)
	require.NoError(t, err)
	e := New(WithProfiles(table))

	// Column means correlate with "casual".
	m := newMatrix(t, []string{"f1", "f2", "f3"}, [][]float64{
		{1, 8, 4},
		{1, 10, 6},
	})

	out, err := e.Match(m, Comparison("auto"))
	require.NoError(t, err)
	assert.Equal(t, "auto: casual", out.CompType)
}

func TestMatchAmbiguousProfile(t *testing.T) {
	table, err := profile.New(
		[]string{"news", "newsletters"},
		[]string{"f1"},
		[][]float64{{1}, {2}},
	)
	require.NoError(t, err)
	e := New(WithProfiles(table))

	m := newMatrix(t, []string{"f1"}, [][]float64{{1}})

	_, err = e.Match(m, Comparison("new"))
	var cfg *ConfigurationError
	require.ErrorAs(t, err, &cfg)
	var ambiguous *profile.AmbiguousMatchError
	assert.ErrorAs(t, err, &ambiguous)
}

func TestMatchSelectionComparison(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0}, // selected as baseline
		{2, 0},
		{0, 3},
	})

	out, err := e.Match(m, Comparison([]int{0}))
	require.NoError(t, err)

	assert.Equal(t, "selection[1]", out.CompType)
	// Selected rows leave the input side.
	require.Len(t, out.Sim.Flat.Values, 2)
	assert.InDelta(t, 1, out.Sim.Flat.Values[0][0], 1e-9)
	assert.InDelta(t, 0, out.Sim.Flat.Values[1][0], 1e-9)
	// The raw matrix is reported unmodified.
	assert.Equal(t, 3, out.DTM.Rows())
	assert.Equal(t, 2, out.Processed.Rows())
}

func TestMatchCategorySelection(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{0, 1},
		{1, 0},
	})

	// A boolean-like vector aligned with the rows selects the truthy rows.
	out, err := e.Match(m, Comparison([]string{"yes", "no", "no"}))
	require.NoError(t, err)

	assert.Equal(t, "selection[1]", out.CompType)
	require.Len(t, out.Sim.Flat.Values, 2)
	assert.InDelta(t, 0, out.Sim.Flat.Values[0][0], 1e-9)
	assert.InDelta(t, 1, out.Sim.Flat.Values[1][0], 1e-9)
}

func TestMatchComparisonTexts(t *testing.T) {
	e := New()

	out, err := e.Match(
		[]string{"the cat sat", "a dog ran"},
		Comparison("the cat sat"), // embedded spaces: raw text, not a keyword
	)
	require.NoError(t, err)

	assert.Equal(t, "selection[1]", out.CompType)
	require.Len(t, out.Sim.Flat.Values, 2)
	assert.InDelta(t, 1, out.Sim.Flat.Values[0][0], 1e-9)
}

func TestMatchExternalMatrix(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"A", "B"}, [][]float64{{1, 2}})

	out, err := e.Match(m, Comparison(map[string]float64{"B": 2, "C": 5}))
	require.NoError(t, err)

	assert.Equal(t, "matrix", out.CompType)
	// Union column space, zero-filled, with one warning per side.
	assert.Equal(t, []string{"A", "B", "C"}, out.Processed.Columns())
	require.Len(t, out.Warnings, 2)
	assert.Contains(t, out.Warnings[0], "A")
	assert.Contains(t, out.Warnings[1], "C")
}

func TestMatchNoCommonColumns(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"A"}, [][]float64{{1}})

	_, err := e.Match(m, Comparison(map[string]float64{"B": 1}))
	var data *DataError
	require.ErrorAs(t, err, &data)
	assert.ErrorIs(t, err, ErrNoCommonColumns)
}

func TestMatchSequential(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{2, 0},
		{4, 0}, // speaker A turn: mean {3, 0}
		{3, 0}, // speaker B turn
		{0, 1}, // speaker A turn
	})

	out, err := e.Match(m,
		Comparison("sequential"),
		Group([]string{"A", "A", "B", "A"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "sequential", out.CompType)
	require.Len(t, out.Sim.Groups, 1)
	assert.Equal(t, "all", out.Sim.Groups[0].Label)

	rows := out.Sim.Groups[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "0-2", rows[0].Label)
	assert.InDelta(t, 1, rows[0].Values[0], 1e-9)
	assert.Equal(t, "2-3", rows[1].Label)
	assert.InDelta(t, 0, rows[1].Values[0], 1e-9)
}

func TestMatchSequentialConversations(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
		{1, 1},
	})

	out, err := e.Match(m,
		Comparison("sequential"),
		Group(
			[]string{"conv1", "conv1", "conv2", "conv2"},
			[]string{"A", "B", "A", "A"},
		),
	)
	require.NoError(t, err)

	require.Len(t, out.Sim.Groups, 2)
	assert.Equal(t, "conv1", out.Sim.Groups[0].Label)
	require.Len(t, out.Sim.Groups[0].Rows, 1)
	assert.InDelta(t, 0, out.Sim.Groups[0].Rows[0].Values[0], 1e-9)

	// conv2 has a single speaker: neutral row, no error.
	assert.Equal(t, "conv2", out.Sim.Groups[1].Label)
	require.Len(t, out.Sim.Groups[1].Rows, 1)
	assert.Equal(t, []float64{1}, out.Sim.Groups[1].Rows[0].Values)
}

func TestMatchSequentialRequiresGroup(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}})

	_, err := e.Match(m, Comparison("sequential"))
	var cfg *ConfigurationError
	assert.ErrorAs(t, err, &cfg)
}

func TestMatchCompGroup(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{0, 1},
		{1, 0},
		{0, 1},
	})
	baseline := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0}, // group a
		{0, 1}, // group b
	})

	out, err := e.Match(m,
		Comparison(baseline),
		Group([]string{"a", "a", "b", "b"}),
		CompGroup([]string{"a", "b"}),
	)
	require.NoError(t, err)

	require.Len(t, out.Sim.Flat.Values, 4)
	assert.InDelta(t, 1, out.Sim.Flat.Values[0][0], 1e-9)
	assert.InDelta(t, 0, out.Sim.Flat.Values[1][0], 1e-9)
	assert.InDelta(t, 0, out.Sim.Flat.Values[2][0], 1e-9)
	assert.InDelta(t, 1, out.Sim.Flat.Values[3][0], 1e-9)
}

func TestMatchCompGroupMissingLevel(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{1, 0},
		{0, 1},
		{0, 1},
	})
	baseline := newMatrix(t, []string{"f1", "f2"}, [][]float64{{1, 0}})

	out, err := e.Match(m,
		Comparison(baseline),
		Group([]string{"a", "a", "c", "c"}),
		CompGroup([]string{"a"}),
	)
	require.NoError(t, err)

	// Rows in group c have no baseline: excluded, with a warning.
	require.Len(t, out.Sim.Flat.Values, 2)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "c")
}

func TestMatchOrder(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}, {3}})

	out, err := e.Match(m, Order([]int{2, 1, 0}), Group([]string{"g", "g", "g"}))
	require.NoError(t, err)

	assert.Equal(t, 3.0, out.Processed.At(0, 0))
	assert.Equal(t, 1.0, out.Processed.At(2, 0))
	// The raw matrix keeps the original order.
	assert.Equal(t, 1.0, out.DTM.At(0, 0))
}

func TestMatchInvalidOrder(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}, {3}})

	out, err := e.Match(m, Order([]int{0, 0, 1}))
	require.NoError(t, err)

	// Invalid ordering is skipped with a warning, original order retained.
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "original order retained")
	assert.Equal(t, 1.0, out.Processed.At(0, 0))
}

func TestMatchOrderReference(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}, {3}})

	out, err := e.Match(m,
		Order("time"),
		Data(Dataset{"time": []int{2, 0, 1}}),
	)
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, 3.0, out.Processed.At(0, 0))
}

func TestMatchDrop(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "dead", "f2"}, [][]float64{
		{1, 0, 2},
		{3, 0, 4},
	})

	out, err := e.Match(m, Drop(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, out.Processed.Columns())
	// The raw matrix keeps all columns.
	assert.Equal(t, 3, out.DTM.NumColumns())
}

func TestMatchDropAllZero(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{0}, {0}})

	_, err := e.Match(m, Drop(true))
	var data *DataError
	require.ErrorAs(t, err, &data)
	assert.ErrorIs(t, err, ErrAllColumnsZero)
}

func TestMatchColumnReference(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2"}, [][]float64{
		{1, 0},
		{0, 1},
		{1, 0},
	})

	// A bare comparison name resolves against the dataset before being
	// treated as a keyword; the resolved vector classifies recursively.
	out, err := e.Match(m,
		Comparison("condition"),
		Data(Dataset{"condition": []string{"1", "0", "0"}}),
	)
	require.NoError(t, err)
	assert.Equal(t, "selection[1]", out.CompType)
}

func TestMatchTypePresets(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}})

	tests := []struct {
		name     string
		preset   string
		expected []metric.Metric
	}{
		{"LSM", "lsm", []metric.Metric{metric.Canberra}},
		{"LSA", "lsa", []metric.Metric{metric.Cosine}},
		{"Default", "default", metric.All},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Match(m, Type(tt.preset))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Sim.Metrics)
		})
	}

	_, err := e.Match(m, Type("bogus"))
	var cfg *ConfigurationError
	assert.ErrorAs(t, err, &cfg)

	// Explicit metrics win over the preset.
	out, err := e.Match(m, Type("lsm"), Metrics(metric.Jaccard))
	require.NoError(t, err)
	assert.Equal(t, []metric.Metric{metric.Jaccard}, out.Sim.Metrics)
}

func TestMatchAliasShortCircuit(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"pronouns", "articles", "preps"}, [][]float64{
		{10, 6, 12},
		{9, 7, 14},
	})

	out, err := e.Match(m, Comparison("blogs"))
	require.NoError(t, err)

	// Variant column names were renamed to their canonical forms.
	assert.True(t, out.Processed.HasColumn("ppron"))
	assert.True(t, out.Processed.HasColumn("article"))
	assert.True(t, out.Processed.HasColumn("prep"))
	assert.False(t, out.Processed.HasColumn("pronouns"))
}

func TestMatchTextInput(t *testing.T) {
	e := New()

	out, err := e.Match([]string{
		"the cat sat on the mat",
		"the dog sat on the mat",
	})
	require.NoError(t, err)

	assert.Equal(t, "pairwise", out.CompType)
	assert.True(t, out.DTM.HasColumn("cat"))
	assert.True(t, out.DTM.HasColumn("dog"))
	require.Len(t, out.Sim.Flat.Values, 2)
	assert.Greater(t, out.Sim.Flat.Values[0][0], 0.5)
}

func TestMatchFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.txt")
	require.NoError(t, os.WriteFile(path, []byte("the cat sat\nthe dog sat\n"), 0o644))

	e := New()
	out, err := e.Match(path)
	require.NoError(t, err)
	assert.Equal(t, 2, out.DTM.Rows())

	_, err = e.Match(filepath.Join(t.TempDir(), "missing.txt"))
	var cfg *ConfigurationError
	assert.ErrorAs(t, err, &cfg)
}

func TestMatchInputErrors(t *testing.T) {
	e := New()

	var cfg *ConfigurationError
	_, err := e.Match(nil)
	assert.ErrorAs(t, err, &cfg)

	_, err = e.Match([]string{})
	assert.ErrorAs(t, err, &cfg)

	_, err = e.Match(42)
	assert.ErrorAs(t, err, &cfg)
}

func TestMatchUnknownComparison(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}})

	_, err := e.Match(m, Comparison("nonexistent"))
	var cfg *ConfigurationError
	require.ErrorAs(t, err, &cfg)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMatchGroupLengthMismatch(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}})

	_, err := e.Match(m, Group([]string{"only one"}))
	var cfg *ConfigurationError
	assert.ErrorAs(t, err, &cfg)
}

func TestMatchDeterminism(t *testing.T) {
	e := New()
	m := newMatrix(t, []string{"f1", "f2", "f3"}, [][]float64{
		{1, 2, 0},
		{0, 1, 3},
		{2, 0, 1},
		{1, 1, 1},
	})

	opts := []MatchOption{
		Group(testutil.Blocks([]string{"a", "b"}, 4)),
		Type("default"),
	}

	out1, err := e.Match(m, opts...)
	require.NoError(t, err)
	out2, err := e.Match(m, opts...)
	require.NoError(t, err)

	assert.Equal(t, out1.Sim, out2.Sim)
	assert.Equal(t, out1.Warnings, out2.Warnings)
}

func TestMatchRandomizedGroupMean(t *testing.T) {
	rng := testutil.NewRNG(42)
	m := rng.CountMatrix(12, 5)
	groups := testutil.Cycle([]string{"g1", "g2", "g3"}, 12)

	e := New()
	out, err := e.Match(m, Group(groups), Type("default"))
	require.NoError(t, err)

	require.Len(t, out.Sim.Flat.Values, 12)
	cosineCol := -1
	for j, mt := range out.Sim.Metrics {
		if mt == metric.Cosine {
			cosineCol = j
		}
	}
	require.GreaterOrEqual(t, cosineCol, 0)

	// Each row's cosine value must match a direct computation against its
	// group's column-wise mean.
	byGroup := make(map[string][][]float64)
	for i := 0; i < m.Rows(); i++ {
		byGroup[groups[i]] = append(byGroup[groups[i]], m.Row(i))
	}
	for i := 0; i < m.Rows(); i++ {
		want := testutil.NaiveCosine(m.Row(i), testutil.NaiveMean(byGroup[groups[i]]))
		assert.InDelta(t, want, out.Sim.Flat.Values[i][cosineCol], 1e-9, "row %d", i)
	}

	// All metrics stay within [-1, 1].
	for _, vals := range out.Sim.Flat.Values {
		for _, v := range vals {
			assert.LessOrEqual(t, v, 1.0+1e-9)
			assert.GreaterOrEqual(t, v, -1.0-1e-9)
		}
	}
}

func TestMatchMetricsCollector(t *testing.T) {
	collector := &BasicMetricsCollector{}
	e := New(WithMetricsCollector(collector))
	m := newMatrix(t, []string{"f1"}, [][]float64{{1}, {2}})

	_, err := e.Match(m)
	require.NoError(t, err)
	_, err = e.Match(m, Type("bogus"))
	require.Error(t, err)

	stats := collector.GetStats()
	assert.Equal(t, int64(2), stats.MatchCount)
	assert.Equal(t, int64(1), stats.MatchErrors)
	assert.Equal(t, int64(2), stats.MatchRows)
}

package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New([]string{"a"}, []string{"x"}, [][]float64{{1}, {2}})
	assert.Error(t, err, "name/row count mismatch")

	_, err = New([]string{"a"}, nil, [][]float64{{}})
	assert.Error(t, err, "no columns")

	_, err = New([]string{"a"}, []string{"x", "x"}, [][]float64{{1, 2}})
	assert.Error(t, err, "duplicate column")

	_, err = New([]string{"a"}, []string{"x", "y"}, [][]float64{{1}})
	assert.Error(t, err, "ragged row")

	table, err := New([]string{"a", "b"}, []string{"x", "y"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Names())
	assert.Equal(t, []string{"x", "y"}, table.Columns())
}

func TestProfile(t *testing.T) {
	table := Defaults()

	vec, ok := table.Profile("blogs")
	require.True(t, ok)
	assert.Len(t, vec, len(table.Columns()))

	_, ok = table.Profile("BLOGS") // exact match only
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	table := Defaults()

	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
		wantErr  bool
	}{
		{"Exact", "twitter", "twitter", true, false},
		{"Prefix", "blo", "blogs", true, false},
		{"CaseInsensitive", "NYT", "nyt", true, false},
		{"NotFound", "reddit", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, vec, found, err := table.Lookup(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, name)
			if tt.found {
				assert.NotEmpty(t, vec)
			}
		})
	}
}

func TestLookupAmbiguous(t *testing.T) {
	table, err := New(
		[]string{"news", "newsletters"},
		[]string{"x"},
		[][]float64{{1}, {2}},
	)
	require.NoError(t, err)

	_, _, _, err = table.Lookup("new")
	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"news", "newsletters"}, ambiguous.Matches)

	// An exact name wins even when it prefixes another.
	name, _, found, err := table.Lookup("news")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "news", name)
}

func TestAutoSelect(t *testing.T) {
	table := Defaults()

	// A mean equal to one profile's vector must select that profile.
	want, ok := table.Profile("speeches")
	require.True(t, ok)

	name, vec, err := table.AutoSelect(table.Columns(), want)
	require.NoError(t, err)
	assert.Equal(t, "speeches", name)
	assert.Equal(t, want, vec)
}

func TestAutoSelectSharedColumnsOnly(t *testing.T) {
	table := Defaults()

	// Unknown columns are ignored; known ones drive the choice.
	want, _ := table.Profile("nyt")
	cols := append([]string{"wordcount"}, table.Columns()...)
	mean := append([]float64{9999}, want...)

	name, _, err := table.AutoSelect(cols, mean)
	require.NoError(t, err)
	assert.Equal(t, "nyt", name)
}

func TestAutoSelectErrors(t *testing.T) {
	table := Defaults()

	_, _, err := table.AutoSelect([]string{"a"}, []float64{1, 2})
	assert.Error(t, err, "length mismatch")

	_, _, err = table.AutoSelect([]string{"unknown"}, []float64{1})
	assert.Error(t, err, "no shared columns")
}

func TestCanonical(t *testing.T) {
	aliases := DefaultAliases()

	assert.Equal(t, "ppron", aliases.Canonical("pronouns"))
	assert.Equal(t, "article", aliases.Canonical("Articles"))
	assert.Equal(t, "wordcount", aliases.Canonical("wordcount"))
}

func TestCoverage(t *testing.T) {
	table := Defaults()
	aliases := DefaultAliases()

	matched, frac := table.Coverage([]string{"pronouns", "articles", "preps", "wordcount"}, aliases)
	assert.InDelta(t, 0.75, frac, 1e-9)
	assert.Equal(t, map[string]string{
		"pronouns": "ppron",
		"articles": "article",
		"preps":    "prep",
	}, matched)

	_, frac = table.Coverage(nil, aliases)
	assert.Zero(t, frac)
}

func TestLoadCSV(t *testing.T) {
	input := `name,ppron,article
formal,4.2,9.1
casual,11.3,4.4
`
	table, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"formal", "casual"}, table.Names())
	assert.Equal(t, []string{"ppron", "article"}, table.Columns())

	vec, ok := table.Profile("casual")
	require.True(t, ok)
	assert.Equal(t, []float64{11.3, 4.4}, vec)
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"HeaderOnly", "name,ppron\n"},
		{"NoFeatures", "name\nblogs\n"},
		{"BadNumber", "name,ppron\nblogs,high\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

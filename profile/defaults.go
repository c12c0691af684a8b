package profile

// Canonical function-word category columns shared by the built-in profiles.
var defaultColumns = []string{
	"ppron", "ipron", "article", "auxverb", "adverb", "conj", "prep", "negate", "quant",
}

// Defaults returns the built-in baseline-profile table: mean function-word
// category rates (percent of words) across several reference corpora.
func Defaults() *Table {
	t, err := New(
		[]string{"blogs", "novels", "nyt", "speeches", "twitter"},
		defaultColumns,
		[][]float64{
			{10.51, 5.29, 5.85, 8.53, 5.84, 6.07, 12.33, 1.68, 2.32},
			{11.96, 4.60, 7.74, 7.77, 4.85, 5.68, 13.88, 1.73, 1.95},
			{4.80, 3.82, 9.18, 5.94, 3.23, 5.33, 15.58, 0.79, 2.17},
			{8.92, 5.55, 7.08, 8.80, 4.46, 6.39, 13.62, 1.24, 2.64},
			{7.49, 4.31, 4.27, 6.38, 4.50, 3.91, 9.52, 1.37, 1.78},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultAliases returns the built-in variant-to-canonical column alias map,
// covering common singular/plural and long-form spellings.
func DefaultAliases() AliasMap {
	return AliasMap{
		"ppron":               "ppron",
		"pronoun":             "ppron",
		"pronouns":            "ppron",
		"personal_pronoun":    "ppron",
		"personal_pronouns":   "ppron",
		"ipron":               "ipron",
		"impersonal_pronoun":  "ipron",
		"impersonal_pronouns": "ipron",
		"article":             "article",
		"articles":            "article",
		"auxverb":             "auxverb",
		"auxverbs":            "auxverb",
		"auxiliary_verb":      "auxverb",
		"auxiliary_verbs":     "auxverb",
		"adverb":              "adverb",
		"adverbs":             "adverb",
		"conj":                "conj",
		"conjunction":         "conj",
		"conjunctions":        "conj",
		"prep":                "prep",
		"preps":               "prep",
		"preposition":         "prep",
		"prepositions":        "prep",
		"negate":              "negate",
		"negation":            "negate",
		"negations":           "negate",
		"quant":               "quant",
		"quantifier":          "quant",
		"quantifiers":         "quant",
	}
}

package dtm

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}']+`)

// Tokenize splits a text into normalized tokens: NFKC normalization,
// lower-casing, and a letter/number token pattern.
func Tokenize(text string) []string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)
	return tokenPattern.FindAllString(text, -1)
}

// FromTexts builds a term-frequency matrix from raw texts, one row per text.
// Columns are the sorted vocabulary of the whole collection. Texts that
// produce no tokens yield all-zero rows.
func FromTexts(texts []string) (*Matrix, error) {
	counts := make([]map[string]float64, len(texts))
	vocab := make(map[string]struct{})
	for i, text := range texts {
		tf := make(map[string]float64)
		for _, tok := range Tokenize(text) {
			tf[tok]++
			vocab[tok] = struct{}{}
		}
		counts[i] = tf
	}
	cols := make([]string, 0, len(vocab))
	for term := range vocab {
		cols = append(cols, term)
	}
	sort.Strings(cols)
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	rows := make([][]float64, len(texts))
	for i, tf := range counts {
		row := make([]float64, len(cols))
		for j, term := range cols {
			row[j] = tf[term]
		}
		rows[i] = row
	}
	return New(cols, rows)
}

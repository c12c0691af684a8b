// Package metric provides the similarity metrics and the comparison
// primitives the dispatch engine delegates to: row-to-baseline comparison,
// pairwise comparison within a row set, and adjacent-turn (sequential)
// comparison over speaker runs.
//
// All metrics are similarity-oriented: identical vectors score 1 under every
// metric, and distance-derived metrics are mapped into (0, 1].
package metric

// Package dtm implements the document-term feature matrix: a dense numeric
// table whose rows are observations (texts) and whose named columns are
// features. Column names carry feature identity and are preserved through
// every transformation; the column set may grow (zero-filled) but never
// silently shrinks.
package dtm

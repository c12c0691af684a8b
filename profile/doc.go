// Package profile holds the named baseline-profile table and the column
// alias map: immutable reference data a feature matrix is compared against
// when a comparison names a profile (or asks for "auto" selection).
package profile

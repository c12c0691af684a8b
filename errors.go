package lingmatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCommonColumns is returned when the input and baseline share no
	// column names at all.
	ErrNoCommonColumns = errors.New("input and baseline share no common columns")

	// ErrAllColumnsZero is returned when dropping zero columns empties the
	// feature matrix.
	ErrAllColumnsZero = errors.New("feature matrix reduces to all-zero columns")
)

// ConfigurationError is fatal: the call's arguments cannot be resolved into
// a valid comparison plan. No partial result is produced.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigurationError struct {
	Reason string
	cause  error
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.cause }

func configErrorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &ConfigurationError{Reason: err.Error(), cause: errors.Unwrap(err)}
}

// DataError is fatal: the data itself cannot support the requested
// computation. No partial result is produced.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DataError struct {
	Reason string
	cause  error
}

func (e *DataError) Error() string {
	return "data error: " + e.Reason
}

func (e *DataError) Unwrap() error { return e.cause }

func dataError(cause error) error {
	return &DataError{Reason: cause.Error(), cause: cause}
}

// NotFoundError reports an argument reference that no resolution source
// could satisfy.
type NotFoundError struct {
	Ref     string
	Sources []string
}

func (e *NotFoundError) Error() string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("reference %q not found", e.Ref)
	}
	return fmt.Sprintf("reference %q not found in %s", e.Ref, strings.Join(e.Sources, ", "))
}

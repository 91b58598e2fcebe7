package common

import (
	"fmt"
	"time"
)

// ConfigError flags an invalid configuration value, raised before any
// computation runs and naming the offending field
type ConfigError struct {
	Field string
	Err   error
}

// NewConfigError wraps err against the named config field
func NewConfigError(field string, err error) error {
	return &ConfigError{Field: field, Err: err}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error for errors.Is checks
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DataError flags insufficient or misaligned input data along with the
// offending timestamp range
type DataError struct {
	Start time.Time
	End   time.Time
	Err   error
}

// NewDataError wraps err against the offending timestamp range
func NewDataError(start, end time.Time, err error) error {
	return &DataError{Start: start, End: end, Err: err}
}

// Error implements the error interface
func (e *DataError) Error() string {
	if e.Start.IsZero() && e.End.IsZero() {
		return fmt.Sprintf("data error: %v", e.Err)
	}
	return fmt.Sprintf("data error between %v and %v: %v",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.Err)
}

// Unwrap returns the underlying error for errors.Is checks
func (e *DataError) Unwrap() error {
	return e.Err
}

// NumericalError flags an ill-conditioned or non-finite computation along
// with the stage that produced it
type NumericalError struct {
	Stage string
	Err   error
}

// NewNumericalError wraps err against the computation stage that raised it
func NewNumericalError(stage string, err error) error {
	return &NumericalError{Stage: stage, Err: err}
}

// Error implements the error interface
func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error at stage %q: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is checks
func (e *NumericalError) Unwrap() error {
	return e.Err
}

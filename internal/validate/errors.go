package validate

import (
	"errors"
	"fmt"

	"github.com/roach88/wsjf/internal/job"
)

// ErrorCode categorizes validation failures.
type ErrorCode string

const (
	// ErrCodeFormat indicates the raw input is not a base-10 integer.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"

	// ErrCodeRange indicates a Size value below 1, or any number outside
	// ±MaxMagnitude.
	ErrCodeRange ErrorCode = "RANGE_ERROR"
)

// ValidationError is a rejected cell edit.
//
// Message is shown to the user verbatim, so Error() returns it without any
// code prefix. Row is -1 when the error is not tied to a table row.
type ValidationError struct {
	Code    ErrorCode
	Column  job.Column
	Row     int
	Input   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewFormatError creates a FORMAT_ERROR for column.
func NewFormatError(column job.Column, input string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeFormat,
		Column:  column,
		Row:     -1,
		Input:   input,
		Message: fmt.Sprintf("%s values should be integers.", column),
	}
}

// NewRangeError creates a RANGE_ERROR for column.
func NewRangeError(column job.Column, input string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeRange,
		Column:  column,
		Row:     -1,
		Input:   input,
		Message: fmt.Sprintf("%s values should be positive, non-zero integers.", column),
	}
}

// NewBoundsError creates a RANGE_ERROR for a number outside ±MaxMagnitude.
func NewBoundsError(column job.Column, input string) *ValidationError {
	low := -MaxMagnitude
	if column == job.ColumnSize {
		low = MinSize
	}
	return &ValidationError{
		Code:    ErrCodeRange,
		Column:  column,
		Row:     -1,
		Input:   input,
		Message: fmt.Sprintf("%s values should be integers between %d and %d.", column, low, MaxMagnitude),
	}
}

// IsFormatError reports whether err is, or wraps, a FORMAT_ERROR.
func IsFormatError(err error) bool {
	return hasCode(err, ErrCodeFormat)
}

// IsRangeError reports whether err is, or wraps, a RANGE_ERROR.
func IsRangeError(err error) bool {
	return hasCode(err, ErrCodeRange)
}

// CodeOf returns the validation code carried by err, or "" if err is not a
// validation error.
func CodeOf(err error) ErrorCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

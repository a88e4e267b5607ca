package priority

import (
	"errors"
	"fmt"
)

// ScoreErrorCode categorizes scoring errors.
type ScoreErrorCode string

const (
	// ErrCodeEmptyTable indicates a top job was requested from an empty table.
	ErrCodeEmptyTable ScoreErrorCode = "EMPTY_TABLE"

	// ErrCodeUndefinedScore indicates a row whose relative duration is zero.
	ErrCodeUndefinedScore ScoreErrorCode = "UNDEFINED_SCORE"
)

// ScoreError is raised by the priority engine.
// Neither kind is fatal: callers render a fallback instead.
type ScoreError struct {
	Code    ScoreErrorCode
	Message string

	// Row is the affected row for UNDEFINED_SCORE, -1 otherwise.
	Row int
}

// Error implements the error interface.
func (e *ScoreError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s: %s (row=%d)", e.Code, e.Message, e.Row)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrEmptyTable is returned by TopJob for a table without rows.
var ErrEmptyTable = &ScoreError{
	Code:    ErrCodeEmptyTable,
	Message: "no jobs to rank",
	Row:     -1,
}

// NewUndefinedScoreError creates an UNDEFINED_SCORE error for row.
func NewUndefinedScoreError(row int, description string) *ScoreError {
	return &ScoreError{
		Code:    ErrCodeUndefinedScore,
		Message: fmt.Sprintf("job %q has zero relative duration, WSJF falls back to %g", description, UndefinedScore),
		Row:     row,
	}
}

// IsEmptyTable returns true if err is an EMPTY_TABLE error.
// Uses errors.As to handle wrapped errors.
func IsEmptyTable(err error) bool {
	var se *ScoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeEmptyTable
	}
	return false
}

// IsUndefinedScore returns true if err is an UNDEFINED_SCORE error.
// Uses errors.As to handle wrapped errors.
func IsUndefinedScore(err error) bool {
	var se *ScoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUndefinedScore
	}
	return false
}

// CodeOf returns the scoring code carried by err, or "" if err is not a
// ScoreError.
func CodeOf(err error) ScoreErrorCode {
	var se *ScoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

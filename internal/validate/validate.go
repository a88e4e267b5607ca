// Package validate is the single gate between raw user input and the job
// table.
//
// Every direct cell edit passes through Cell before it may be applied. The
// rules are:
//
//   - the description column accepts any text unmodified
//   - numeric columns must parse as base-10 integers (FORMAT_ERROR)
//   - Size must be at least 1 (RANGE_ERROR)
//   - every number must lie within ±MaxMagnitude (RANGE_ERROR)
//
// Value, Urgency, Risk Reduction and Opportunity accept any integer within
// the bound. Negative values are meaningless for those attributes but are let
// through; the scoring engine handles them without special cases.
package validate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/roach88/wsjf/internal/job"
)

// MinSize is the smallest accepted Size.
const MinSize = 1

// MaxMagnitude bounds the absolute value of every numeric cell. Cost of Delay
// sums three cells, and 3*MaxMagnitude still fits a 32-bit int.
const MaxMagnitude = 100_000_000

// Cell validates raw input for column and returns the typed cell value.
// It has no side effects; on error nothing may be written to the table.
func Cell(column job.Column, raw string) (job.Cell, error) {
	if column == job.ColumnDescription {
		return job.Cell{Column: column, Text: raw}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return job.Cell{}, NewBoundsError(column, raw)
	}
	if err != nil {
		return job.Cell{}, NewFormatError(column, raw)
	}
	if err := checkNumber(column, n, raw); err != nil {
		return job.Cell{}, err
	}

	return job.Cell{Column: column, Number: n}, nil
}

func checkNumber(column job.Column, n int, raw string) error {
	if column == job.ColumnSize && n < MinSize {
		return NewRangeError(column, raw)
	}
	if n > MaxMagnitude || n < -MaxMagnitude {
		return NewBoundsError(column, raw)
	}
	return nil
}

// Job checks every numeric field of a complete record against the same rules
// Cell applies to single edits. Used when tables enter the system in bulk
// (job files, scenario seeds).
func Job(j job.Job) error {
	for _, c := range job.Columns {
		if !c.IsNumeric() {
			continue
		}
		n := j.Get(c).Number
		if err := checkNumber(c, n, strconv.Itoa(n)); err != nil {
			return err
		}
	}
	return nil
}

// Table validates every row and returns all violations, each tagged with its
// row index. Returns nil when the table is valid.
func Table(jobs []job.Job) []error {
	var errs []error
	for i, j := range jobs {
		if err := Job(j); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Row = i
			}
			errs = append(errs, err)
		}
	}
	return errs
}

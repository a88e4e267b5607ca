package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wsjf/internal/job"
)

func TestCell_Description(t *testing.T) {
	inputs := []string{"", "Fix bug", "  padded  ", "123", "-5", "ünïcode"}

	for _, raw := range inputs {
		cell, err := Cell(job.ColumnDescription, raw)
		require.NoError(t, err)
		assert.Equal(t, raw, cell.Text, "description must be stored unmodified")
		assert.Equal(t, job.ColumnDescription, cell.Column)
	}
}

func TestCell_NumericColumns(t *testing.T) {
	tests := []struct {
		column job.Column
		raw    string
		want   int
		code   ErrorCode
	}{
		{job.ColumnSize, "1", 1, ""},
		{job.ColumnSize, "13", 13, ""},
		{job.ColumnSize, " 8 ", 8, ""},
		{job.ColumnSize, "+3", 3, ""},
		{job.ColumnSize, "0", 0, ErrCodeRange},
		{job.ColumnSize, "-2", 0, ErrCodeRange},
		{job.ColumnSize, "abc", 0, ErrCodeFormat},
		{job.ColumnSize, "4.0", 0, ErrCodeFormat},
		{job.ColumnSize, "", 0, ErrCodeFormat},
		{job.ColumnSize, "0x10", 0, ErrCodeFormat},
		{job.ColumnSize, "99999999999999999999999", 0, ErrCodeRange},
		{job.ColumnSize, "100000000", 100000000, ""},
		{job.ColumnSize, "100000001", 0, ErrCodeRange},
		{job.ColumnUrgency, "-100000000", -100000000, ""},
		{job.ColumnUrgency, "-100000001", 0, ErrCodeRange},
		{job.ColumnUrgency, "9223372036854775807", 0, ErrCodeRange},
		{job.ColumnOpportunity, "-9223372036854775809", 0, ErrCodeRange},
		{job.ColumnValue, "0", 0, ""},
		{job.ColumnUrgency, "5", 5, ""},
		{job.ColumnUrgency, "-1", -1, ""},
		{job.ColumnRiskReduction, "0", 0, ""},
		{job.ColumnRiskReduction, "1e3", 0, ErrCodeFormat},
		{job.ColumnOpportunity, "two", 0, ErrCodeFormat},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.column, tt.raw), func(t *testing.T) {
			cell, err := Cell(tt.column, tt.raw)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, cell.Number)
				assert.Equal(t, tt.column, cell.Column)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.Equal(t, job.Cell{}, cell)
		})
	}
}

// Cell succeeds iff the input parses as an integer within ±MaxMagnitude and
// the column is not Size or the value is at least 1.
func TestCell_AcceptanceProperty(t *testing.T) {
	inputs := []string{"-10", "-1", "0", "1", "2", "100", "x", "1.5", " ", "7a", "100000000", "100000001", "-100000001"}

	for _, column := range job.Columns[1:] {
		for _, raw := range inputs {
			_, err := Cell(column, raw)

			n, parseErr := parseInt(raw)
			wantOK := parseErr == nil && (column != job.ColumnSize || n >= 1) &&
				n <= MaxMagnitude && n >= -MaxMagnitude

			assert.Equal(t, wantOK, err == nil, "%s %q", column, raw)
		}
	}
}

var integerPattern = regexp.MustCompile(`^\s*[+-]?[0-9]+\s*$`)

func parseInt(raw string) (int, error) {
	if !integerPattern.MatchString(raw) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func TestCell_Messages(t *testing.T) {
	_, err := Cell(job.ColumnSize, "abc")
	assert.EqualError(t, err, "Size values should be integers.")

	_, err = Cell(job.ColumnRiskReduction, "abc")
	assert.EqualError(t, err, "Risk Reduction values should be integers.")

	_, err = Cell(job.ColumnSize, "0")
	assert.EqualError(t, err, "Size values should be positive, non-zero integers.")

	_, err = Cell(job.ColumnSize, "100000001")
	assert.EqualError(t, err, "Size values should be integers between 1 and 100000000.")

	_, err = Cell(job.ColumnUrgency, "9223372036854775807")
	assert.EqualError(t, err, "Urgency values should be integers between -100000000 and 100000000.")
}

// Summing the largest accepted cells cannot wrap Cost of Delay.
func TestCell_MaxMagnitudeKeepsCostOfDelayPositive(t *testing.T) {
	j := job.Job{Size: 1}
	for _, c := range []job.Column{job.ColumnUrgency, job.ColumnRiskReduction, job.ColumnOpportunity} {
		cell, err := Cell(c, strconv.Itoa(MaxMagnitude))
		require.NoError(t, err)
		j = j.With(cell)
	}
	assert.Equal(t, 3*MaxMagnitude, j.CostOfDelay())
	assert.LessOrEqual(t, j.CostOfDelay(), math.MaxInt32)

	_, err := Cell(job.ColumnUrgency, strconv.Itoa(math.MaxInt))
	assert.True(t, IsRangeError(err))
}

func TestErrorHelpers(t *testing.T) {
	_, err := Cell(job.ColumnSize, "abc")
	assert.True(t, IsFormatError(err))
	assert.False(t, IsRangeError(err))

	wrapped := fmt.Errorf("edit row 0: %w", NewRangeError(job.ColumnSize, "0"))
	assert.True(t, IsRangeError(wrapped))
	assert.Equal(t, ErrCodeRange, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("other")))
	assert.False(t, IsFormatError(nil))
}

func TestJob(t *testing.T) {
	assert.NoError(t, Job(job.Job{Size: 1}))
	assert.NoError(t, Job(job.Job{Size: 3, Urgency: -1}))
	assert.True(t, IsRangeError(Job(job.Job{Size: 0})))
	assert.True(t, IsRangeError(Job(job.Job{Size: 1, Urgency: math.MaxInt})))
	assert.True(t, IsRangeError(Job(job.Job{Size: MaxMagnitude + 1})))
	assert.NoError(t, Job(job.Job{Size: 1, Opportunity: -MaxMagnitude}))
}

func TestTable(t *testing.T) {
	jobs := []job.Job{
		{Description: "ok", Size: 2},
		{Description: "zero", Size: 0},
		{Description: "ok too", Size: 1},
		{Description: "negative", Size: -4},
	}

	errs := Table(jobs)
	require.Len(t, errs, 2)

	var ve *ValidationError
	require.ErrorAs(t, errs[0], &ve)
	assert.Equal(t, 1, ve.Row)
	require.ErrorAs(t, errs[1], &ve)
	assert.Equal(t, 3, ve.Row)

	assert.Nil(t, Table(job.Seed()))
}

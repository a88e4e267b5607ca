package job

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColumn is returned by ParseColumn for a name outside the schema.
var ErrUnknownColumn = errors.New("unknown column")

// Column identifies one field of the job schema.
type Column int

const (
	ColumnDescription Column = iota
	ColumnSize
	ColumnValue
	ColumnUrgency
	ColumnRiskReduction
	ColumnOpportunity
)

// Columns lists every column in schema order.
var Columns = []Column{
	ColumnDescription,
	ColumnSize,
	ColumnValue,
	ColumnUrgency,
	ColumnRiskReduction,
	ColumnOpportunity,
}

var columnNames = map[Column]string{
	ColumnDescription:   "Job Description",
	ColumnSize:          "Size",
	ColumnValue:         "Value",
	ColumnUrgency:       "Urgency",
	ColumnRiskReduction: "Risk Reduction",
	ColumnOpportunity:   "Opportunity",
}

var columnKeys = map[Column]string{
	ColumnDescription:   "description",
	ColumnSize:          "size",
	ColumnValue:         "value",
	ColumnUrgency:       "urgency",
	ColumnRiskReduction: "risk_reduction",
	ColumnOpportunity:   "opportunity",
}

// String returns the display name of the column, e.g. "Risk Reduction".
func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// Key returns the snake_case key used in files and JSON, e.g. "risk_reduction".
func (c Column) Key() string {
	return columnKeys[c]
}

// IsNumeric reports whether the column holds an integer.
// Every column except the description is numeric.
func (c Column) IsNumeric() bool {
	return c != ColumnDescription && c.valid()
}

func (c Column) valid() bool {
	_, ok := columnNames[c]
	return ok
}

// ParseColumn resolves a column from its display name or key.
// Matching is case-insensitive and treats '_' and ' ' alike, so
// "Risk Reduction", "risk_reduction" and "RISK REDUCTION" are equivalent.
// "description" and "job description" both select the description column.
func ParseColumn(name string) (Column, error) {
	want := normalizeColumnName(name)
	if want == "description" {
		return ColumnDescription, nil
	}
	for _, c := range Columns {
		if normalizeColumnName(c.String()) == want || normalizeColumnName(c.Key()) == want {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

func normalizeColumnName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

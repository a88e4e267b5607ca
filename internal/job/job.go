package job

import "fmt"

// Job is one row of the job table.
//
// Value is part of the schema and stays editable, but the WSJF formula
// does not read it.
type Job struct {
	Description   string `json:"description" yaml:"description"`
	Size          int    `json:"size" yaml:"size"`
	Value         int    `json:"value" yaml:"value"`
	Urgency       int    `json:"urgency" yaml:"urgency"`
	RiskReduction int    `json:"risk_reduction" yaml:"risk_reduction"`
	Opportunity   int    `json:"opportunity" yaml:"opportunity"`
}

// CostOfDelay is Urgency + Risk Reduction + Opportunity.
func (j Job) CostOfDelay() int {
	return j.Urgency + j.RiskReduction + j.Opportunity
}

// Cell is a single typed cell value addressed by column.
// Text is used by the description column, Number by every other column.
type Cell struct {
	Column Column
	Text   string
	Number int
}

// String renders the cell as it would appear in the table.
func (c Cell) String() string {
	if c.Column == ColumnDescription {
		return c.Text
	}
	return fmt.Sprintf("%d", c.Number)
}

// Get returns the cell of j in column c.
func (j Job) Get(c Column) Cell {
	cell := Cell{Column: c}
	switch c {
	case ColumnDescription:
		cell.Text = j.Description
	case ColumnSize:
		cell.Number = j.Size
	case ColumnValue:
		cell.Number = j.Value
	case ColumnUrgency:
		cell.Number = j.Urgency
	case ColumnRiskReduction:
		cell.Number = j.RiskReduction
	case ColumnOpportunity:
		cell.Number = j.Opportunity
	}
	return cell
}

// With returns a copy of j with cell written into its column.
func (j Job) With(cell Cell) Job {
	switch cell.Column {
	case ColumnDescription:
		j.Description = cell.Text
	case ColumnSize:
		j.Size = cell.Number
	case ColumnValue:
		j.Value = cell.Number
	case ColumnUrgency:
		j.Urgency = cell.Number
	case ColumnRiskReduction:
		j.RiskReduction = cell.Number
	case ColumnOpportunity:
		j.Opportunity = cell.Number
	}
	return j
}

// Blank returns the template appended by the add-row action:
// an empty description, Size 1 and every other attribute 0.
func Blank() Job {
	return Job{Size: 1}
}

// Seed returns the example table a new session starts with.
func Seed() []Job {
	return []Job{
		{Description: "A", Size: 4, Value: 1, Urgency: 1},
		{Description: "B", Size: 5, Value: 2, Urgency: 2},
		{Description: "C", Size: 6, Value: 3, Urgency: 3},
	}
}

// Clone returns a copy of jobs that shares no backing array with it.
// A nil input yields an empty, non-nil slice.
func Clone(jobs []Job) []Job {
	out := make([]Job, len(jobs))
	copy(out, jobs)
	return out
}

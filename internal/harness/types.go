package harness

import (
	"github.com/roach88/wsjf/internal/job"
)

// TraceEvent is one handled step.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Kind    string `json:"kind"`
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Raw     string `json:"raw,omitempty"`
	Applied bool   `json:"applied"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// RankedJob is one row of the derived view with its score rendered as text.
type RankedJob struct {
	Row         int    `json:"row"`
	Description string `json:"description"`
	WSJF        string `json:"wsjf"`
	Undefined   bool   `json:"undefined,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	// Final is the job table after the last step.
	Final []job.Job `json:"final"`

	// Priorities is the derived view of Final in row order.
	Priorities []RankedJob `json:"priorities"`

	// TopJob is the next job, or empty with TopJobCode set when there is
	// no top job.
	TopJob     string `json:"top_job,omitempty"`
	TopJobCode string `json:"top_job_code,omitempty"`
}

// NewResult creates a passing result with empty collections.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		Errors:     []string{},
		Final:      []job.Job{},
		Priorities: []RankedJob{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

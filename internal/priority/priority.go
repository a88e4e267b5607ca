// Package priority computes Weighted Shortest Job First scores.
//
// For every job:
//
//	costOfDelay = Urgency + RiskReduction + Opportunity
//	rd          = Size / min(Size)
//	cod         = costOfDelay / min(costOfDelay)
//	WSJF        = cod / rd
//
// Normalization is column-wide. If the minimum of a column is exactly zero
// the column is not normalized at all and raw values are used for every row.
// A row whose rd ends up zero has no defined score; it gets UndefinedScore
// and is flagged, so NaN and Inf never appear in the output.
//
// Everything here is a pure function of its input. Results are recomputed on
// every call and nothing is cached between calls.
package priority

import (
	"slices"
	"strconv"

	"github.com/roach88/wsjf/internal/job"
)

// UndefinedScore is the WSJF assigned to rows with a zero relative duration.
const UndefinedScore = 0.0

// Priority is the derived score of one job.
type Priority struct {
	// Row is the index of the job in the input table.
	Row         int     `json:"row"`
	Description string  `json:"description"`
	CostOfDelay int     `json:"cost_of_delay"`

	// RelativeDuration is rd: Size scaled by the smallest Size.
	RelativeDuration float64 `json:"relative_duration"`

	// RelativeCostOfDelay is cod: Cost of Delay scaled by the smallest one.
	RelativeCostOfDelay float64 `json:"relative_cost_of_delay"`

	WSJF float64 `json:"wsjf"`

	// Undefined is set when RelativeDuration is zero and WSJF holds
	// UndefinedScore instead of a quotient.
	Undefined bool `json:"undefined,omitempty"`
}

// Normalization describes the divisors used for one computation.
type Normalization struct {
	SizeMin        int  `json:"size_min"`
	SizeNormalized bool `json:"size_normalized"`
	CostMin        int  `json:"cost_min"`
	CostNormalized bool `json:"cost_normalized"`
}

// Normalize returns the column minima for jobs and whether each column can be
// normalized. An empty table yields the zero value.
func Normalize(jobs []job.Job) Normalization {
	if len(jobs) == 0 {
		return Normalization{}
	}

	n := Normalization{
		SizeMin: jobs[0].Size,
		CostMin: jobs[0].CostOfDelay(),
	}
	for _, j := range jobs[1:] {
		n.SizeMin = min(n.SizeMin, j.Size)
		n.CostMin = min(n.CostMin, j.CostOfDelay())
	}
	n.SizeNormalized = n.SizeMin != 0
	n.CostNormalized = n.CostMin != 0
	return n
}

// Compute scores every job. The output has one entry per input row, in input
// order.
func Compute(jobs []job.Job) []Priority {
	out := make([]Priority, len(jobs))
	if len(jobs) == 0 {
		return out
	}

	n := Normalize(jobs)
	for i, j := range jobs {
		cost := j.CostOfDelay()

		rd := float64(j.Size)
		if n.SizeNormalized {
			rd /= float64(n.SizeMin)
		}
		cod := float64(cost)
		if n.CostNormalized {
			cod /= float64(n.CostMin)
		}

		p := Priority{
			Row:                 i,
			Description:         j.Description,
			CostOfDelay:         cost,
			RelativeDuration:    positiveZero(rd),
			RelativeCostOfDelay: positiveZero(cod),
		}
		if rd == 0 {
			p.WSJF = UndefinedScore
			p.Undefined = true
		} else {
			p.WSJF = positiveZero(cod / rd)
		}
		out[i] = p
	}
	return out
}

// positiveZero maps -0 to +0 so that formatted output never shows "-0".
func positiveZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

// Rank returns a copy of priorities sorted by WSJF, highest first.
// Rows with equal scores keep their table order.
func Rank(priorities []Priority) []Priority {
	ranked := slices.Clone(priorities)
	slices.SortStableFunc(ranked, func(a, b Priority) int {
		switch {
		case a.WSJF > b.WSJF:
			return -1
		case a.WSJF < b.WSJF:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// Top returns the highest-ranked priority, or ErrEmptyTable.
func Top(priorities []Priority) (Priority, error) {
	if len(priorities) == 0 {
		return Priority{}, ErrEmptyTable
	}
	return Rank(priorities)[0], nil
}

// TopJob returns the description of the job with the highest WSJF.
// Ties go to the earliest row. An empty table returns ErrEmptyTable.
func TopJob(jobs []job.Job) (string, error) {
	top, err := Top(Compute(jobs))
	if err != nil {
		return "", err
	}
	return top.Description, nil
}

// Undefined returns an UNDEFINED_SCORE error for every flagged row, in row
// order. Returns nil when every score is defined.
func Undefined(priorities []Priority) []error {
	var errs []error
	for _, p := range priorities {
		if p.Undefined {
			errs = append(errs, NewUndefinedScoreError(p.Row, p.Description))
		}
	}
	return errs
}

// FormatScore renders a score with four decimals, the precision used by
// every textual view.
func FormatScore(f float64) string {
	return strconv.FormatFloat(positiveZero(f), 'f', 4, 64)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/jobfile"
	"github.com/roach88/wsjf/internal/priority"
)

// TableView is the JSON form of a job table with its derived scores.
type TableView struct {
	Jobs          []job.Job              `json:"jobs"`
	Priorities    []priority.Priority    `json:"priorities"`
	Normalization priority.Normalization `json:"normalization"`
	NextJob       string                 `json:"next_job,omitempty"`
	Empty         bool                   `json:"empty,omitempty"`
}

// newTableView derives the view of rows. Undefined scores are logged.
func newTableView(rows []job.Job, logger *slog.Logger) TableView {
	ps := priority.Compute(rows)
	for _, err := range priority.Undefined(ps) {
		logger.Warn("undefined score", "error", err)
	}

	view := TableView{
		Jobs:          rows,
		Priorities:    ps,
		Normalization: priority.Normalize(rows),
	}
	top, err := priority.Top(ps)
	if err != nil {
		view.Empty = true
	} else {
		view.NextJob = top.Description
	}
	return view
}

// nextJobText is the label shown for the next job.
func (v TableView) nextJobText() string {
	if v.Empty {
		return NoJobsText
	}
	return v.NextJob
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 1, 1, 2, ' ', 0)
}

// writeGrid prints the editable job table.
func writeGrid(w io.Writer, rows []job.Job) error {
	tw := newTabWriter(w)
	fmt.Fprint(tw, "#")
	for _, c := range job.Columns {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintln(tw)
	for i, j := range rows {
		fmt.Fprintf(tw, "%d", i)
		for _, c := range job.Columns {
			fmt.Fprintf(tw, "\t%s", j.Get(c))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// writePriorities prints the derived WSJF view in row order.
func writePriorities(w io.Writer, ps []priority.Priority) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "#\tJob Description\tCost of Delay\trd\tcod\tWSJF")
	for _, p := range ps {
		score := priority.FormatScore(p.WSJF)
		if p.Undefined {
			score += " (undefined)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			p.Row,
			p.Description,
			p.CostOfDelay,
			priority.FormatScore(p.RelativeDuration),
			priority.FormatScore(p.RelativeCostOfDelay),
			score,
		)
	}
	return tw.Flush()
}

// writeNextJob prints the next-job label.
func writeNextJob(w io.Writer, v TableView) error {
	_, err := fmt.Fprintf(w, "Next job: %s\n", v.nextJobText())
	return err
}

// loadSeed returns the table a command starts from: the job file at path,
// or the built-in seed when path is empty.
func loadSeed(path string) ([]job.Job, error) {
	if path == "" {
		return job.Seed(), nil
	}
	return jobfile.Load(path)
}

// loadSeedError reports a job file failure and returns the exit error.
func loadSeedError(f *OutputFormatter, path string, err error) error {
	var le *jobfile.LoadError
	if errors.As(err, &le) {
		_ = f.Error(le.Code, le.Error(), problemDetails(le.Problems))
	} else {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
	}
	return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load jobs from %s", path), err)
}

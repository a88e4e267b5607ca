package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// RankOptions holds flags for the rank and top commands.
type RankOptions struct {
	*RootOptions
	Jobs string
}

// NewRankCommand creates the rank command.
func NewRankCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RankOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the WSJF view of a job table",
		Long: `Compute WSJF for every job and print the derived table in row order,
followed by the next job.

Without --jobs the built-in seed table is ranked.

Examples:
  wsjf rank
  wsjf rank --jobs backlog.yaml
  wsjf rank --jobs backlog.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Jobs, "jobs", "", "job file to rank (.yaml, .yml, .json or .cue)")

	return cmd
}

func runRank(opts *RankOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	path := opts.jobsPath(opts.Jobs)
	rows, err := loadSeed(path)
	if err != nil {
		return loadSeedError(formatter, path, err)
	}
	logger.Debug("jobs loaded", "path", path, "rows", len(rows))

	view := newTableView(rows, logger)
	return formatter.Render(view, func(w io.Writer) error {
		if err := writePriorities(w, view.Priorities); err != nil {
			return err
		}
		return writeNextJob(w, view)
	})
}

// TopResult is the JSON payload of the top command.
type TopResult struct {
	NextJob string `json:"next_job,omitempty"`
	Empty   bool   `json:"empty,omitempty"`
}

// NewTopCommand creates the top command.
func NewTopCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RankOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the next job",
		Long: `Print the description of the job with the highest WSJF.

Ties go to the job listed first. An empty table prints "No jobs".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Jobs, "jobs", "", "job file to rank (.yaml, .yml, .json or .cue)")

	return cmd
}

func runTop(opts *RankOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	path := opts.jobsPath(opts.Jobs)
	rows, err := loadSeed(path)
	if err != nil {
		return loadSeedError(formatter, path, err)
	}

	view := newTableView(rows, logger)
	result := TopResult{NextJob: view.NextJob, Empty: view.Empty}
	return formatter.Render(result, func(w io.Writer) error {
		_, err := io.WriteString(w, view.nextJobText()+"\n")
		return err
	})
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wsjf/internal/session"
	"github.com/roach88/wsjf/internal/store"
)

// SessionOptions holds flags for the session command.
type SessionOptions struct {
	*RootOptions
	Jobs       string
	AppendMode string
	Trace      bool
}

// EventResult is the JSON payload written after each handled event.
type EventResult struct {
	Seq     int64  `json:"seq"`
	Kind    string `json:"kind"`
	Applied bool   `json:"applied"`
	TableView
}

// TraceResult is the JSON payload of --trace.
type TraceResult struct {
	SessionID string        `json:"session_id"`
	Entries   []store.Entry `json:"entries"`
}

const sessionHelp = `Commands:
  edit <row> <column> <value>   set one cell (quote columns with spaces: "Risk Reduction")
  add                           append a blank row
  reset                         restore the starting table
  show                          print the table and scores
  top                           print the next job
  help                          print this help
  quit                          end the session`

// NewSessionCommand creates the session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Edit a job table interactively",
		Long: `Start an interactive session that reads commands from stdin.

Each edit is validated before it reaches the table; rejected edits print
their reason and leave the table unchanged. After every change the WSJF view
and the next job are printed again.

` + sessionHelp + `

Examples:
  wsjf session
  wsjf session --jobs backlog.yaml --append-mode collapse
  printf 'edit 0 Size 2\nquit\n' | wsjf session --trace`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Jobs, "jobs", "", "job file to start from (default: built-in seed)")
	cmd.Flags().StringVar(&opts.AppendMode, "append-mode", string(session.AppendPreserve), "add-row behavior (preserve|collapse)")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the session journal on exit")

	return cmd
}

// repl is one running session command.
type repl struct {
	session   *session.Session
	formatter *OutputFormatter
	logger    *slog.Logger
}

func runSession(opts *SessionOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := opts.jobsPath(opts.Jobs)
	seed, err := loadSeed(path)
	if err != nil {
		return loadSeedError(formatter, path, err)
	}

	mode, err := session.ParseAppendMode(opts.appendMode(opts.AppendMode))
	if err != nil {
		_ = formatter.Error(ErrCodeUsage, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid append mode", err)
	}

	s, err := session.New(ctx, seed,
		session.WithAppendMode(mode),
		session.WithLogger(logger),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start session", err)
	}
	defer s.Close()

	r := &repl{session: s, formatter: formatter, logger: logger}
	if err := r.show(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		quit, err := r.exec(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	if opts.Trace {
		return r.trace(ctx)
	}
	return nil
}

// exec runs one input line. It reports whether the session should end.
func (r *repl) exec(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	verb, args, _ := strings.Cut(line, " ")
	switch strings.ToLower(verb) {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := fmt.Fprintln(r.formatter.Writer, sessionHelp)
		return false, err
	case "show":
		return false, r.show()
	case "top":
		return false, r.top()
	case "add":
		return false, r.handle(ctx, session.Event{Kind: session.EventAppend})
	case "reset":
		return false, r.handle(ctx, session.Event{Kind: session.EventReset})
	case "edit":
		ev, err := parseEdit(args)
		if err != nil {
			return false, r.formatter.Error(ErrCodeUsage, err.Error(), nil)
		}
		return false, r.handle(ctx, ev)
	}
	return false, r.formatter.Error(ErrCodeUnknownCommand, fmt.Sprintf("unknown command %q (try help)", verb), nil)
}

func (r *repl) handle(ctx context.Context, ev session.Event) error {
	out := r.session.Handle(ctx, ev)
	if out.Err != nil {
		details := map[string]any{"seq": out.Seq, "kind": string(ev.Kind)}
		if ev.Kind == session.EventEdit {
			details["row"] = ev.Row
			details["column"] = ev.Column
		}
		return r.formatter.Error(session.ErrorCode(out.Err), out.Err.Error(), details)
	}

	view := newTableView(r.session.Rows(), r.logger)
	result := EventResult{Seq: out.Seq, Kind: string(ev.Kind), Applied: true, TableView: view}
	return r.formatter.Render(result, func(w io.Writer) error {
		return writeView(w, view)
	})
}

func (r *repl) show() error {
	view := newTableView(r.session.Rows(), r.logger)
	return r.formatter.Render(view, func(w io.Writer) error {
		return writeView(w, view)
	})
}

func (r *repl) top() error {
	view := newTableView(r.session.Rows(), r.logger)
	return r.formatter.Render(TopResult{NextJob: view.NextJob, Empty: view.Empty}, func(w io.Writer) error {
		return writeNextJob(w, view)
	})
}

func (r *repl) trace(ctx context.Context) error {
	entries, err := r.session.Journal(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session journal", err)
	}

	result := TraceResult{SessionID: r.session.ID(), Entries: entries}
	return r.formatter.Render(result, func(w io.Writer) error {
		fmt.Fprintf(w, "Session %s\n", result.SessionID)
		tw := newTabWriter(w)
		fmt.Fprintln(tw, "SEQ\tKIND\tROW\tCOLUMN\tVALUE\tOUTCOME\tCODE")
		for _, e := range entries {
			row := "-"
			if e.Row >= 0 {
				row = strconv.Itoa(e.Row)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%q\t%s\t%s\n",
				e.Seq, e.Kind, row, e.Column, e.Raw, e.Outcome, e.ErrorCode)
		}
		return tw.Flush()
	})
}

// writeView prints the grid, the WSJF view and the next job.
func writeView(w io.Writer, view TableView) error {
	if err := writeGrid(w, view.Jobs); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := writePriorities(w, view.Priorities); err != nil {
		return err
	}
	return writeNextJob(w, view)
}

// parseEdit parses `<row> <column> <value>`. A column containing spaces may
// be double-quoted. The value is the rest of the line and may be empty.
func parseEdit(args string) (session.Event, error) {
	const usage = "usage: edit <row> <column> <value>"

	rowText, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if rowText == "" {
		return session.Event{}, errors.New(usage)
	}
	row, err := strconv.Atoi(rowText)
	if err != nil {
		return session.Event{}, fmt.Errorf("row must be an integer, got %q", rowText)
	}

	rest = strings.TrimLeft(rest, " ")
	var column, value string
	if strings.HasPrefix(rest, `"`) {
		var ok bool
		column, value, ok = strings.Cut(rest[1:], `"`)
		if !ok {
			return session.Event{}, fmt.Errorf("unterminated quoted column in %q", rest)
		}
		value = strings.TrimPrefix(value, " ")
	} else {
		column, value, _ = strings.Cut(rest, " ")
	}
	if column == "" {
		return session.Event{}, errors.New(usage)
	}

	return session.EditEvent(row, column, value), nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/wsjf/internal/jobfile"
	"github.com/roach88/wsjf/internal/validate"
)

// ValidationIssue is one rejected value in a job file.
type ValidationIssue struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Jobs   int               `json:"jobs"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <job-file>",
		Short: "Validate a job file",
		Long: `Validate a YAML or CUE job file without ranking it.

Every value is checked with the same rules as an interactive edit, and every
violation is reported, not only the first.

Exit codes:
  0 - All jobs valid
  1 - One or more values rejected
  2 - File could not be read or parsed`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	jobs, err := jobfile.Parse(path)
	if err != nil {
		var le *jobfile.LoadError
		if errors.As(err, &le) {
			return outputValidateError(formatter, le.Code, le.Error())
		}
		return outputValidateError(formatter, ErrCodeGeneric, err.Error())
	}
	formatter.VerboseLog("Parsed %d job(s) from %s", len(jobs), path)

	if problems := validate.Table(jobs); len(problems) > 0 {
		return outputValidationErrors(formatter, len(jobs), issues(problems))
	}

	return formatter.Render(ValidationResult{Valid: true, Jobs: len(jobs)}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ %d job(s) valid\n", len(jobs))
		return err
	})
}

// issues converts validation errors for output.
func issues(problems []error) []ValidationIssue {
	out := make([]ValidationIssue, 0, len(problems))
	for _, err := range problems {
		issue := ValidationIssue{Row: -1, Code: ErrCodeGeneric, Message: err.Error()}
		var ve *validate.ValidationError
		if errors.As(err, &ve) {
			issue.Row = ve.Row
			issue.Column = ve.Column.String()
			issue.Code = string(ve.Code)
		}
		out = append(out, issue)
	}
	return out
}

// problemDetails is the error detail payload for a list of violations, or
// nil when there are none.
func problemDetails(problems []error) any {
	if len(problems) == 0 {
		return nil
	}
	return issues(problems)
}

// outputValidateError outputs a file-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, message)
}

// outputValidationErrors outputs every rejected value.
func outputValidationErrors(formatter *OutputFormatter, jobs int, errs []ValidationIssue) error {
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Jobs: jobs, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "row %d\n", e.Row)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Message)
	}
	return failed
}

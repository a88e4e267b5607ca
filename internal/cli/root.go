package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wsjf/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is resolved from flags, environment and config file before a
	// subcommand runs. It is nil when a subcommand is executed on its own,
	// in which case the subcommand's flags are used as given.
	Config *config.Config
}

// NewRootCommand creates the root command for the wsjf CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wsjf",
		Short: "WSJF - Weighted Shortest Job First",
		Long: `Rank jobs by Weighted Shortest Job First.

Each job has a Size and the Cost of Delay components Urgency, Risk Reduction
and Opportunity. WSJF divides the normalized Cost of Delay by the normalized
Size; the job with the highest score is the next job.

Settings are read from flags, WSJF_* environment variables and an optional
wsjf.yaml in the working directory (or --config).`,
		SilenceErrors: true, // main prints the error and sets the exit code
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./wsjf.yaml if present)")

	// Add subcommands
	cmd.AddCommand(NewRankCommand(opts))
	cmd.AddCommand(NewTopCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSessionCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve loads the configuration for the command about to run.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	cfg, err := config.Load(v, o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.Config = cfg
	o.Format = cfg.Format
	o.Verbose = cfg.Verbose
	return nil
}

// jobsPath returns the seed job file, preferring the resolved config.
func (o *RootOptions) jobsPath(flag string) string {
	if o.Config != nil {
		return o.Config.Jobs
	}
	return flag
}

// appendMode returns the add-row mode, preferring the resolved config.
func (o *RootOptions) appendMode(flag string) string {
	if o.Config != nil {
		return o.Config.AppendMode
	}
	return flag
}

// logger returns a text logger on w at Info, or Debug when verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

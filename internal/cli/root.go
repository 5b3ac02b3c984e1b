package cli

import (
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dshills/stagehook/internal/config"
)

// BuildInfo describes the binary, filled in by the linker.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RootOptions holds global flags and the state they produce.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "text" | "yaml"

	Build BuildInfo

	config config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "yaml"}

// NewRootCommand creates the root command for the stagehook CLI.
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &RootOptions{Build: build}

	cmd := &cobra.Command{
		Use:   "stagehook",
		Short: "stagehook - multi-stage hotkey matching",
		Long: "Match key, cursor, scroll, echo and generic signals against multi-stage hotkeys.\n" +
			"Replay recorded scenarios or listen to a live terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default stagehook.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|yaml)")

	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewListenCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// setup validates global flags, loads the configuration and builds the
// logger. Logs go to the command's error stream.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError, "invalid format "+o.Format+": must be one of text, yaml")
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if o.Verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "configure logging", err)
	}

	o.config = cfg
	o.logger = logger
	return nil
}

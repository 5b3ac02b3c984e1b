package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/stagehook/internal/scenario"
	"github.com/dshills/stagehook/internal/trigger"
	"github.com/dshills/stagehook/internal/watch"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Script   string
	Watch    bool
	Debounce time.Duration
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay scenario files through a dispatcher",
		Long: `Replay the signals of each scenario through a fresh dispatcher and report
every decision, completion and counter.

Exit codes:
  0 - All scenarios replayed and no handler failed
  1 - A trigger handler returned an error
  2 - Command error (unreadable config, invalid scenario, etc.)

Examples:
  stagehook replay testdata/save_chord.yaml
  stagehook replay --format yaml chord.yaml wheel.yaml
  stagehook replay --script on_trigger.lua --watch chord.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "Lua script defining on_trigger (overrides trigger.script)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "replay again whenever a scenario file changes")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 100*time.Millisecond, "delay before a changed file is replayed")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions, paths []string) error {
	runner, closeHandler, err := opts.newRunner()
	if err != nil {
		return err
	}
	defer closeHandler()

	out := cmd.OutOrStdout()
	var failed error
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := opts.replayOne(out, runner, path); err != nil {
			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
				return err
			}
			failed = err
		}
	}

	if !opts.Watch {
		return failed
	}
	return opts.watch(cmd.Context(), out, runner, paths)
}

// newRunner builds a scenario runner from the loaded configuration. The
// returned func releases the script, if any.
func (o *ReplayOptions) newRunner() (*scenario.Runner, func(), error) {
	dc, err := o.config.DispatcherConfig()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "dispatcher config", err)
	}
	runOpts := []scenario.RunnerOption{
		scenario.WithDispatcherConfig(dc),
		scenario.WithRunnerLogger(o.logger),
		scenario.WithHandlerTimeout(o.config.Trigger.Timeout.Std()),
	}

	script := o.Script
	if script == "" {
		script = o.config.Trigger.Script
	}
	if script == "" {
		return scenario.NewRunner(runOpts...), func() {}, nil
	}

	h, err := trigger.LoadLuaHandler(script, trigger.WithLuaLogger(o.logger))
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load script", err)
	}
	runOpts = append(runOpts, scenario.WithHandler(h))
	return scenario.NewRunner(runOpts...), h.Close, nil
}

// replayOne replays path and writes its report. Handler errors are reported
// after the output has been written.
func (o *ReplayOptions) replayOne(out io.Writer, runner *scenario.Runner, path string) error {
	report, err := runner.RunFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay "+path, err)
	}
	o.logger.Debug("scenario replayed", "path", path, "steps", len(report.Steps), "blocked", report.Blocked())

	if o.Format == "yaml" {
		err = report.WriteYAML(out)
	} else {
		err = report.WriteText(out)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "write report", err)
	}

	if n := handlerErrors(report); n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d handler error(s)", path, n))
	}
	return nil
}

func handlerErrors(r *scenario.Report) int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Errors)
	}
	return n
}

// watch replays a scenario every time it changes, until ctx is done.
func (o *ReplayOptions) watch(ctx context.Context, out io.Writer, runner *scenario.Runner, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := watch.New(watch.WithDelay(o.Debounce), watch.WithLogger(o.logger))
	if err != nil {
		return WrapExitError(ExitFailure, "start watcher", err)
	}
	defer w.Close()

	names := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return WrapExitError(ExitCommandError, "watch "+p, err)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return WrapExitError(ExitCommandError, "watch "+p, err)
		}
		names[abs] = p
	}
	o.logger.Info("watching scenarios", "files", len(paths))

	err = w.Run(ctx, func(e watch.Event) {
		if e.Op.Has(watch.OpRemove) || e.Op.Has(watch.OpRename) {
			return
		}
		path, ok := names[e.Path]
		if !ok {
			return
		}
		fmt.Fprintf(out, "\n== %s changed ==\n", path)
		if err := o.replayOne(out, runner, path); err != nil {
			// Keep watching; the next save may fix it.
			fmt.Fprintf(out, "error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

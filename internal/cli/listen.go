package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/stagehook/internal/config"
	"github.com/dshills/stagehook/internal/dispatcher"
	"github.com/dshills/stagehook/internal/hook/terminal"
	"github.com/dshills/stagehook/internal/scenario"
	"github.com/dshills/stagehook/internal/trigger"
)

// newScreen opens the terminal. Tests replace it with a simulation screen.
var newScreen = tcell.NewScreen

// ListenOptions holds flags for the listen command.
type ListenOptions struct {
	*RootOptions
	Script      string
	LogFile     string
	History     int
	StopTimeout time.Duration
}

// NewListenCommand creates the listen command.
func NewListenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "listen <scenario.yaml>",
		Short: "Match the hotkeys of a scenario against live terminal input",
		Long: `Register the hotkeys of a scenario and feed them keys, mouse motion, buttons
and wheel notches read from the terminal. Decisions are shown as they are
made; blocked signals are highlighted. The scenario's signals are ignored.

Terminals only report key presses, so stages waiting for a release never
match here. Press Ctrl+C to quit.

Examples:
  stagehook listen chord.yaml
  stagehook listen --script on_trigger.lua --log-file stagehook.log chord.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "Lua script defining on_trigger (overrides trigger.script)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file instead of discarding them")
	cmd.Flags().IntVar(&opts.History, "history", 200, "number of decisions kept on screen")
	cmd.Flags().DurationVar(&opts.StopTimeout, "stop-timeout", 2*time.Second, "time allowed for pending handlers on exit")

	return cmd
}

// completionCounter counts completions per hotkey name.
type completionCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *completionCounter) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name]++
}

func (c *completionCounter) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.counts) == 0 {
		return "none"
	}
	names := make([]string, 0, len(c.counts))
	for name := range c.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, c.counts[name])
	}
	return strings.Join(parts, ", ")
}

func runListen(cmd *cobra.Command, opts *ListenOptions, path string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := opts.listenLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	f, err := scenario.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "load scenario", err)
	}
	bindings, err := f.Build()
	if err != nil {
		return WrapExitError(ExitCommandError, "build hotkeys", err)
	}
	dc, err := opts.config.DispatcherConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "dispatcher config", err)
	}

	script := opts.Script
	if script == "" {
		script = opts.config.Trigger.Script
	}
	var lua *trigger.LuaHandler
	if script != "" {
		lua, err = trigger.LoadLuaHandler(script, trigger.WithLuaLogger(logger))
		if err != nil {
			return WrapExitError(ExitCommandError, "load script", err)
		}
		defer lua.Close()
	}

	screen, err := newScreen()
	if err != nil {
		return WrapExitError(ExitFailure, "open terminal", err)
	}
	if err := screen.Init(); err != nil {
		return WrapExitError(ExitFailure, "init terminal", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	view := terminal.NewView(fmt.Sprintf("stagehook: %s (Ctrl+C to quit)", f.Name), opts.History)
	counter := &completionCounter{counts: make(map[string]int)}

	router := trigger.NewRouter()
	router.SetFallback(trigger.HandlerFunc(func(ctx context.Context, n trigger.Notification) error {
		counter.add(n.Name)
		view.Note("fired " + n.Name)
		view.Draw(screen)
		if lua != nil {
			return lua.Handle(ctx, n)
		}
		return nil
	}))

	pool := trigger.NewPool(router, append(opts.config.PoolOptions(), trigger.WithLogger(logger))...)
	if err := pool.Start(); err != nil {
		return WrapExitError(ExitFailure, "start trigger pool", err)
	}
	var stopOnce sync.Once
	stopPool := func() {
		stopOnce.Do(func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), opts.StopTimeout)
			defer cancel()
			if err := pool.Stop(stopCtx); err != nil {
				logger.Warn("trigger pool did not drain", "error", err)
			}
		})
	}
	defer stopPool()

	d := dispatcher.New(dc, dispatcher.WithLogger(logger), dispatcher.WithNotifier(pool))
	for _, b := range bindings {
		if b.Hotkey.Disabled {
			continue
		}
		if err := b.Register(d); err != nil {
			return WrapExitError(ExitCommandError, "register "+b.Hotkey.Name, err)
		}
		view.Note("hotkey " + b.Container.String())
	}

	src := terminal.NewSource(screen, d,
		terminal.WithLogger(logger),
		terminal.WithObserver(func(dec terminal.Decision) {
			view.Add(dec)
			view.Draw(screen)
		}),
	)
	view.Draw(screen)

	runErr := src.Run(ctx)

	// Handlers draw on the screen, so drain them before it is finalized.
	stopPool()
	fini()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return WrapExitError(ExitFailure, "listen", runErr)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "completions: %s\n", counter)
	return nil
}

// listenLogger builds the logger for listen, writing to --log-file if set.
func (o *ListenOptions) listenLogger() (*slog.Logger, func(), error) {
	if o.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open log file", err)
	}
	logging := o.config.Logging
	if o.Verbose {
		logging.Level = "debug"
	}
	logger, err := config.NewLogger(logging, f)
	if err != nil {
		f.Close()
		return nil, nil, WrapExitError(ExitCommandError, "configure logging", err)
	}
	return logger, func() { f.Close() }, nil
}

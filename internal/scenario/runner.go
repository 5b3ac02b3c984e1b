package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dshills/stagehook/internal/dispatcher"
	"github.com/dshills/stagehook/internal/signal"
	"github.com/dshills/stagehook/internal/trigger"
)

// Runner replays scenarios through a fresh dispatcher per run.
type Runner struct {
	config  dispatcher.Config
	handler trigger.Handler
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDispatcherConfig sets the dispatcher configuration. Metrics are
// always enabled for replays.
func WithDispatcherConfig(c dispatcher.Config) RunnerOption {
	return func(r *Runner) {
		r.config = c
	}
}

// WithHandler chains a handler, such as a Lua script, after the report
// recorder. Handler errors are reported against the step that fired.
func WithHandler(h trigger.Handler) RunnerOption {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithHandlerTimeout bounds each handler call.
func WithHandlerTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithRunnerLogger sets the logger passed to the dispatcher.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRunnerClock sets the clock used to stamp notifications.
func WithRunnerClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		config: dispatcher.DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.config.EnableMetrics = true
	return r
}

// recorder collects the notifications of one dispatch.
type recorder struct {
	next   trigger.Handler
	fired  []string
	errors []string
	counts map[string]int
}

func (rec *recorder) Handle(ctx context.Context, n trigger.Notification) error {
	rec.fired = append(rec.fired, n.Name)
	rec.counts[n.Name]++
	if rec.next == nil {
		return nil
	}
	if err := rec.next.Handle(ctx, n); err != nil {
		rec.errors = append(rec.errors, fmt.Sprintf("%s: %v", n.Name, err))
		return err
	}
	return nil
}

func (rec *recorder) take() (fired, errs []string) {
	fired, errs = rec.fired, rec.errors
	rec.fired, rec.errors = nil, nil
	return fired, errs
}

// Run compiles and replays f.
func (r *Runner) Run(f *File) (*Report, error) {
	bindings, err := f.Build()
	if err != nil {
		return nil, err
	}
	actions := make([]action, len(f.Signals))
	for i, s := range f.Signals {
		a, err := s.compile()
		if err != nil {
			return nil, fmt.Errorf("%w: signals[%d]: %v", ErrInvalidScenario, i, err)
		}
		actions[i] = a
	}

	rec := &recorder{next: r.handler, counts: make(map[string]int)}
	d := dispatcher.New(r.config,
		dispatcher.WithLogger(r.logger),
		dispatcher.WithClock(r.now),
		dispatcher.WithNotifier(trigger.NewInline(rec, r.timeout, r.logger)),
	)

	report := &Report{Scenario: f.Name}
	var active []Binding
	for _, b := range bindings {
		hr := HotkeyReport{
			Name:     b.Hotkey.Name,
			Stages:   b.Container.String(),
			Disabled: b.Hotkey.Disabled,
		}
		if !b.Hotkey.Disabled {
			if err := b.Register(d); err != nil {
				return nil, fmt.Errorf("%w: hotkey %q: %v", ErrInvalidScenario, b.Hotkey.Name, err)
			}
			for _, k := range b.Routed() {
				hr.Routed = append(hr.Routed, k.String())
			}
			active = append(active, b)
		}
		report.Hotkeys = append(report.Hotkeys, hr)
	}

	index := 0
	for _, a := range actions {
		if a.toggle {
			index++
			d.SetEnabled(a.kind, a.enable)
			verb := "disable"
			if a.enable {
				verb = "enable"
			}
			report.Steps = append(report.Steps, StepReport{Index: index, Control: verb + " " + a.kind.String()})
			continue
		}
		for range a.repeat {
			index++
			kind := signal.KindOf(a.sig)
			suppressed := !d.Enabled(kind)
			blocked := d.Dispatch(a.sig, a.mods)
			fired, errs := rec.take()

			sr := StepReport{
				Index:      index,
				Signal:     a.sig.String(),
				Decision:   decision(blocked),
				Suppressed: suppressed,
				Fired:      fired,
				Errors:     errs,
			}
			if a.mods != 0 {
				sr.Mods = a.mods.String()
			}
			for _, b := range active {
				sr.Progress = append(sr.Progress, ProgressEntry{
					Name:     b.Hotkey.Name,
					Progress: b.Container.Progress().String(),
				})
			}
			report.Steps = append(report.Steps, sr)
		}
	}

	for _, b := range active {
		report.Completions = append(report.Completions, Completion{
			Name:  b.Hotkey.Name,
			Count: rec.counts[b.Hotkey.Name],
		})
	}
	for _, km := range d.Metrics().All() {
		report.Metrics = append(report.Metrics, KindReport{
			Kind:        km.Kind.String(),
			Dispatches:  km.Dispatches,
			Blocked:     km.Blocked,
			Completions: km.Completions,
			Suppressed:  km.Suppressed,
			Dropped:     km.Dropped,
			Panics:      km.Panics,
		})
	}
	return report, nil
}

func decision(blocked bool) string {
	if blocked {
		return "block"
	}
	return "pass"
}

// RunFile loads and replays a scenario file.
func (r *Runner) RunFile(path string) (*Report, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return r.Run(f)
}

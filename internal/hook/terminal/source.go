package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// Dispatcher decides whether a signal is swallowed.
type Dispatcher interface {
	Dispatch(sig signal.Signal, mods key.Modifier) bool
}

// Decision is the outcome of dispatching one converted input.
type Decision struct {
	Signal  signal.Signal
	Mods    key.Modifier
	Blocked bool
	At      time.Time
}

// Source reads events from a screen and feeds them to a dispatcher.
type Source struct {
	screen  tcell.Screen
	d       Dispatcher
	conv    Converter
	quit    tcell.Key
	observe func(Decision)
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithObserver is called with every decision, on the Run goroutine.
func WithObserver(fn func(Decision)) Option {
	return func(s *Source) {
		s.observe = fn
	}
}

// WithQuitKey sets the key that stops Run. It is never dispatched. The
// default is Ctrl+C.
func WithQuitKey(k tcell.Key) Option {
	return func(s *Source) {
		s.quit = k
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used to stamp decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSource creates a source. The screen must already be initialized.
func NewSource(screen tcell.Screen, d Dispatcher, opts ...Option) *Source {
	s := &Source{
		screen: screen,
		d:      d,
		quit:   tcell.KeyCtrlC,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run polls the screen until the quit key is pressed, the screen is
// finalized or ctx is done.
func (s *Source) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if k, ok := ev.(*tcell.EventKey); ok && k.Key() == s.quit {
			s.logger.Debug("quit key pressed")
			return nil
		}
		s.Handle(ev)
	}
}

// Handle converts and dispatches one event and returns the decisions.
func (s *Source) Handle(ev tcell.Event) []Decision {
	inputs := s.conv.Convert(ev)
	if len(inputs) == 0 {
		return nil
	}
	decisions := make([]Decision, 0, len(inputs))
	for _, in := range inputs {
		d := Decision{
			Signal:  in.Signal,
			Mods:    in.Mods,
			Blocked: s.d.Dispatch(in.Signal, in.Mods),
			At:      s.now(),
		}
		s.logger.Debug("signal dispatched", "signal", d.Signal, "mods", d.Mods, "blocked", d.Blocked)
		if s.observe != nil {
			s.observe(d)
		}
		decisions = append(decisions, d)
	}
	return decisions
}

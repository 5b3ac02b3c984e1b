package stage

import (
	"fmt"
	"strings"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// Stage is a single-step matcher bound to one signal kind.
//
// The zero value has no matcher and never matches; use New or NewKindMatch.
type Stage struct {
	m         *matcher
	intercept signal.Signal
	kind      signal.Kind
	anyKind   bool
	mods      Mods
	blocking  bool
	tolerance uint32
	activated bool
}

// Option configures a Stage.
type Option func(*Stage)

// WithMods sets the modifier filter. The default accepts any modifiers.
func WithMods(m Mods) Option {
	return func(s *Stage) {
		s.mods = m
	}
}

// WithBlocking marks the stage as swallowing the events it matches.
func WithBlocking(b bool) Option {
	return func(s *Stage) {
		s.blocking = b
	}
}

// WithTolerance sets the per-axis tolerance for cursor and scroll stages.
func WithTolerance(tol uint32) Option {
	return func(s *Stage) {
		s.tolerance = tol
	}
}

// New creates a stage whose comparison strategy follows the template's
// concrete type. A nil template yields a generic stage that matches every
// signal, including a nil one.
func New(template signal.Signal, opts ...Option) (Stage, error) {
	m := matcherFor(template)
	if m == nil {
		return Stage{}, fmt.Errorf("%w: unsupported template %T", ErrMalformedStage, template)
	}
	s := Stage{
		m:         m,
		intercept: template,
		kind:      signal.KindOf(template),
		anyKind:   template == nil,
		mods:      AnyMods(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// NewKindMatch creates a generic stage that matches any signal of the
// template's kind, ignoring its fields. A nil template matches everything.
func NewKindMatch(template signal.Signal, opts ...Option) (Stage, error) {
	if template != nil && !template.Kind().Valid() {
		return Stage{}, fmt.Errorf("%w: kind %s", ErrMalformedStage, template.Kind())
	}
	s := Stage{
		m:         genericMatcher,
		intercept: template,
		kind:      signal.KindOf(template),
		anyKind:   template == nil,
		mods:      AnyMods(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// MustNew is like New but panics on error. Intended for tests and static
// tables.
func MustNew(template signal.Signal, opts ...Option) Stage {
	s, err := New(template, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Valid returns true if the stage has a matcher.
func (s *Stage) Valid() bool {
	return s.m != nil
}

// Kind returns the signal kind the stage is bound to. Stages that match
// every kind report KindGeneric.
func (s *Stage) Kind() signal.Kind {
	return s.kind
}

// MatchesAnyKind returns true for generic stages without a template.
func (s *Stage) MatchesAnyKind() bool {
	return s.m != nil && s.anyKind
}

// Template returns the stored template signal.
func (s *Stage) Template() signal.Signal {
	return s.intercept
}

// Mods returns the modifier filter.
func (s *Stage) Mods() Mods {
	return s.mods
}

// Blocking returns true if a match swallows the originating event.
func (s *Stage) Blocking() bool {
	return s.blocking
}

// Tolerance returns the analog tolerance.
func (s *Stage) Tolerance() uint32 {
	return s.tolerance
}

// Activated returns the transient progress flag.
func (s *Stage) Activated() bool {
	return s.activated
}

// Reset clears the progress flag.
func (s *Stage) Reset() {
	s.activated = false
}

// IsMe reports whether sig matches the stage under the current modifiers.
// It does not change the stage. Blocking is only reported on a match.
func (s *Stage) IsMe(sig signal.Signal, mods key.Modifier) (matched, blocking bool) {
	if s.m == nil {
		return false, false
	}
	if s.m.mods && !s.mods.Allows(mods) {
		return false, false
	}
	if !s.m.match(s, sig) {
		return false, false
	}
	return true, s.blocking
}

// MyType reports whether sig is of the stage's kind, ignoring its fields.
func (s *Stage) MyType(sig signal.Signal) (isKind, blocking bool) {
	if s.m == nil {
		return false, false
	}
	switch {
	case s.anyKind:
	case sig == nil || sig.Kind() != s.kind:
		return false, false
	}
	return true, s.blocking
}

// Activate updates the progress flag and returns its new value.
//
// An inactive stage runs the full IsMe predicate and reports its blocking
// flag when it becomes active. An active stage only checks the signal kind,
// so same-kind refreshes such as autorepeat keep it active; a refresh never
// reports blocking.
func (s *Stage) Activate(sig signal.Signal, mods key.Modifier) (activated, blocking bool) {
	if s.activated {
		s.activated, _ = s.MyType(sig)
		return s.activated, false
	}
	s.activated, blocking = s.IsMe(sig, mods)
	return s.activated, blocking
}

// String returns a compact description, e.g. "key x:down mods=Ctrl block".
func (s *Stage) String() string {
	if s.m == nil {
		return "malformed"
	}
	var b strings.Builder
	switch {
	case s.m == genericMatcher && s.intercept == nil:
		b.WriteString("any")
	case s.m == genericMatcher:
		b.WriteString("kind ")
		b.WriteString(s.kind.String())
	default:
		b.WriteString(s.intercept.String())
	}
	if !s.mods.IsAny() {
		b.WriteString(" mods=")
		b.WriteString(s.mods.String())
	}
	if s.tolerance > 0 {
		fmt.Fprintf(&b, " tol=%d", s.tolerance)
	}
	if s.blocking {
		b.WriteString(" block")
	}
	return b.String()
}

package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/stagehook/internal/dispatcher"
	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
	"github.com/dshills/stagehook/internal/stage"
)

// Binding is a compiled hotkey.
type Binding struct {
	Hotkey    Hotkey
	Container *stage.Container

	// Kinds is the explicit routing, or nil to route by the container's
	// own kinds.
	Kinds []signal.Kind
}

// Routed returns the kinds the binding is registered for.
func (b Binding) Routed() []signal.Kind {
	if b.Kinds != nil {
		return b.Kinds
	}
	return b.Container.Kinds()
}

// Register adds the container to d, routed by Kinds if set and by the
// container's own kinds otherwise.
func (b Binding) Register(d *dispatcher.Dispatcher) error {
	if b.Kinds == nil {
		return d.RegisterContainer(b.Container)
	}
	for _, k := range b.Kinds {
		if err := d.Register(k, b.Container); err != nil {
			return err
		}
	}
	return nil
}

// Build compiles every hotkey of the file.
func (f *File) Build() ([]Binding, error) {
	bindings := make([]Binding, 0, len(f.Hotkeys))
	for _, h := range f.Hotkeys {
		b, err := h.Build()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// Build compiles the hotkey into a container.
func (h Hotkey) Build() (Binding, error) {
	var stages []stage.Stage
	if h.Keys != "" {
		seq, err := key.ParseSequence(h.Keys)
		if err != nil {
			return Binding{}, fmt.Errorf("%w: hotkey %q: %v", ErrInvalidScenario, h.Name, err)
		}
		if seq.IsEmpty() {
			return Binding{}, fmt.Errorf("%w: hotkey %q: empty key sequence", ErrInvalidScenario, h.Name)
		}
		stages = stage.FromSequence(seq, stage.WithBlocking(h.Blocking))
	}
	for i, spec := range h.Stages {
		st, err := spec.build(h.Blocking)
		if err != nil {
			return Binding{}, fmt.Errorf("%w: hotkey %q stage %d: %v", ErrInvalidScenario, h.Name, i, err)
		}
		stages = append(stages, st)
	}

	var kinds []signal.Kind
	for _, name := range h.Kinds {
		k, err := signal.ParseKind(name)
		if err != nil {
			return Binding{}, fmt.Errorf("%w: hotkey %q: %v", ErrInvalidScenario, h.Name, err)
		}
		kinds = append(kinds, k)
	}

	return Binding{
		Hotkey:    h,
		Container: stage.NewContainer(h.Name, stages...),
		Kinds:     kinds,
	}, nil
}

func (s StageSpec) build(blocking bool) (stage.Stage, error) {
	if n := s.count(); n != 1 {
		return stage.Stage{}, fmt.Errorf("exactly one of key, cursor, scroll, echo, kind or any is required, got %d", n)
	}
	if (s.Kind != "" || s.Any) && s.Mods != "" {
		return stage.Stage{}, fmt.Errorf("mods have no effect on kind and any stages")
	}
	if s.Blocking != nil {
		blocking = *s.Blocking
	}
	opts := []stage.Option{stage.WithBlocking(blocking), stage.WithTolerance(s.Tolerance)}

	var (
		tmpl     signal.Signal
		kindOnly bool
		mods     = stage.AnyMods()
	)
	switch {
	case s.Key != "":
		e, err := key.Parse(s.Key)
		if err != nil {
			return stage.Stage{}, err
		}
		tmpl = signal.NewKey(e)
		mods = stage.ModsFromEvent(e)
	case s.Cursor != nil:
		c, err := s.Cursor.signal()
		if err != nil {
			return stage.Stage{}, err
		}
		tmpl = c
	case s.Scroll != nil:
		tmpl = s.Scroll.signal()
	case s.Echo != "":
		id, err := parseEcho(s.Echo)
		if err != nil {
			return stage.Stage{}, err
		}
		tmpl = signal.Echo{ID: id}
	case s.Kind != "":
		k, err := signal.ParseKind(s.Kind)
		if err != nil {
			return stage.Stage{}, err
		}
		tmpl, kindOnly = zeroOf(k), true
	case s.Any:
		// tmpl stays nil: match everything.
	}

	if s.Mods != "" {
		m, err := parseStageMods(s.Mods)
		if err != nil {
			return stage.Stage{}, err
		}
		mods = m
	}
	opts = append(opts, stage.WithMods(mods))
	if kindOnly {
		return stage.NewKindMatch(tmpl, opts...)
	}
	return stage.New(tmpl, opts...)
}

func (s StageSpec) count() int {
	n := 0
	for _, set := range []bool{s.Key != "", s.Cursor != nil, s.Scroll != nil, s.Echo != "", s.Kind != "", s.Any} {
		if set {
			n++
		}
	}
	return n
}

func (c CursorSpec) signal() (signal.Cursor, error) {
	var mode signal.CursorMode
	switch strings.ToLower(c.Mode) {
	case "", "any":
		mode = signal.CursorAny
	case "relative", "rel":
		mode = signal.CursorRelative
	case "absolute", "abs":
		mode = signal.CursorAbsolute
	default:
		return signal.Cursor{}, fmt.Errorf("unknown cursor mode %q", c.Mode)
	}
	return signal.Cursor{X: c.X, Y: c.Y, Z: c.Z, Mode: mode}, nil
}

func (s ScrollSpec) signal() signal.Scroll {
	return signal.Scroll{DX: s.DX, DY: s.DY, DZ: s.DZ}
}

func parseEcho(v string) (int64, error) {
	if strings.EqualFold(v, "any") {
		return signal.AnyEcho, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("echo id %q: %w", v, err)
	}
	return id, nil
}

func parseStageMods(v string) (stage.Mods, error) {
	if strings.EqualFold(v, "any") {
		return stage.AnyMods(), nil
	}
	m, ok := key.ParseModifiers(v)
	if !ok {
		return stage.Mods{}, fmt.Errorf("unknown modifiers %q", v)
	}
	return stage.ExactMods(m), nil
}

// zeroOf returns a template of kind k for kind-only stages.
func zeroOf(k signal.Kind) signal.Signal {
	switch k {
	case signal.KindKey:
		return signal.Key{}
	case signal.KindCursor:
		return signal.Cursor{}
	case signal.KindScroll:
		return signal.Scroll{}
	case signal.KindEcho:
		return signal.Echo{}
	default:
		return signal.Generic{}
	}
}

// action is a compiled step.
type action struct {
	sig    signal.Signal
	mods   key.Modifier
	repeat int

	// toggle is set for control steps.
	toggle bool
	enable bool
	kind   signal.Kind
}

func (s Step) compile() (action, error) {
	n := 0
	for _, set := range []bool{s.Key != "", s.Cursor != nil, s.Scroll != nil, s.Echo != nil, s.Generic != "", s.Enable != "", s.Disable != ""} {
		if set {
			n++
		}
	}
	if n != 1 {
		return action{}, fmt.Errorf("exactly one of key, cursor, scroll, echo, generic, enable or disable is required, got %d", n)
	}

	if s.Enable != "" || s.Disable != "" {
		name := s.Enable + s.Disable
		k, err := signal.ParseKind(name)
		if err != nil {
			return action{}, err
		}
		return action{toggle: true, enable: s.Enable != "", kind: k}, nil
	}

	a := action{repeat: max(s.Repeat, 1)}
	switch {
	case s.Key != "":
		e, err := key.Parse(s.Key)
		if err != nil {
			return action{}, err
		}
		a.sig = signal.NewKey(e)
		a.mods = e.Modifiers
	case s.Cursor != nil:
		c, err := s.Cursor.signal()
		if err != nil {
			return action{}, err
		}
		a.sig = c
	case s.Scroll != nil:
		a.sig = s.Scroll.signal()
	case s.Echo != nil:
		a.sig = signal.Echo{ID: *s.Echo}
	case s.Generic != "":
		a.sig = signal.Generic{Name: s.Generic}
	}

	if s.Mods != "" {
		m, ok := key.ParseModifiers(s.Mods)
		if !ok {
			return action{}, fmt.Errorf("unknown modifiers %q", s.Mods)
		}
		a.mods = m
	}
	return a, nil
}

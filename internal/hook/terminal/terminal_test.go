package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

type fakeDispatcher struct {
	block signal.Signal
	got   []Input
}

func (f *fakeDispatcher) Dispatch(sig signal.Signal, mods key.Modifier) bool {
	f.got = append(f.got, Input{Signal: sig, Mods: mods})
	return f.block != nil && signal.Equal(sig, f.block)
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Input
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
			Input{signal.Key{Code: key.CodeX, Dir: key.DirDown}, key.ModNone}},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModNone),
			Input{signal.Key{Code: key.CodeX, Dir: key.DirDown}, key.ModShift}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt),
			Input{signal.Key{Code: key.CodeF, Dir: key.DirDown}, key.ModAlt}},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl),
			Input{signal.Key{Code: key.CodeX, Dir: key.DirDown}, key.ModCtrl}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
			Input{signal.Key{Code: key.CodeTab, Dir: key.DirDown}, key.ModNone}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone),
			Input{signal.Key{Code: key.CodeTab, Dir: key.DirDown}, key.ModShift}},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModAlt),
			Input{signal.Key{Code: key.CodeF5, Dir: key.DirDown}, key.ModAlt}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift),
			Input{signal.Key{Code: key.CodeLeft, Dir: key.DirDown}, key.ModShift}},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone),
			Input{signal.Generic{Code: uint32('é'), Name: "é"}, key.ModNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Converter
			got := c.Convert(tt.ev)
			if len(got) != 1 {
				t.Fatalf("Convert() returned %d inputs, want 1", len(got))
			}
			if !signal.Equal(got[0].Signal, tt.want.Signal) {
				t.Errorf("Signal = %v, want %v", got[0].Signal, tt.want.Signal)
			}
			if got[0].Mods != tt.want.Mods {
				t.Errorf("Mods = %v, want %v", got[0].Mods, tt.want.Mods)
			}
		})
	}
}

func TestConvertMouse(t *testing.T) {
	var c Converter
	steps := []struct {
		name string
		ev   *tcell.EventMouse
		want []Input
	}{
		{"first position", tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone),
			[]Input{{signal.Cursor{X: 3, Y: 4, Mode: signal.CursorAbsolute}, key.ModNone}}},
		{"press", tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone),
			[]Input{{signal.Key{Code: CodeButtonLeft, Dir: key.DirDown}, key.ModNone}}},
		{"drag", tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone),
			[]Input{{signal.Cursor{X: 5, Y: 4, Mode: signal.CursorAbsolute}, key.ModNone}}},
		{"release", tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone),
			[]Input{{signal.Key{Code: CodeButtonLeft, Dir: key.DirUp}, key.ModNone}}},
		{"wheel up", tcell.NewEventMouse(5, 4, tcell.WheelUp, tcell.ModCtrl),
			[]Input{{signal.Scroll{DY: 1}, key.ModCtrl}}},
		{"wheel left", tcell.NewEventMouse(5, 4, tcell.WheelLeft, tcell.ModNone),
			[]Input{{signal.Scroll{DX: -1}, key.ModNone}}},
		{"move and right press", tcell.NewEventMouse(6, 6, tcell.Button2, tcell.ModNone),
			[]Input{
				{signal.Cursor{X: 6, Y: 6, Mode: signal.CursorAbsolute}, key.ModNone},
				{signal.Key{Code: CodeButtonRight, Dir: key.DirDown}, key.ModNone},
			}},
		{"idle", tcell.NewEventMouse(6, 6, tcell.Button2, tcell.ModNone), nil},
	}

	for _, st := range steps {
		got := c.Convert(st.ev)
		if len(got) != len(st.want) {
			t.Fatalf("%s: Convert() returned %d inputs, want %d: %v", st.name, len(got), len(st.want), got)
		}
		for i := range got {
			if !signal.Equal(got[i].Signal, st.want[i].Signal) || got[i].Mods != st.want[i].Mods {
				t.Errorf("%s: input %d = %v %v, want %v %v", st.name, i,
					got[i].Signal, got[i].Mods, st.want[i].Signal, st.want[i].Mods)
			}
		}
	}
}

func TestConvertOther(t *testing.T) {
	var c Converter

	got := c.Convert(tcell.NewEventResize(80, 24))
	if len(got) != 1 || !signal.Equal(got[0].Signal, signal.Generic{Name: "resize"}) {
		t.Errorf("Convert(resize) = %v", got)
	}

	if got := c.Convert(tcell.NewEventInterrupt(nil)); got != nil {
		t.Errorf("Convert(interrupt) = %v, want nil", got)
	}
}

func TestSourceHandle(t *testing.T) {
	fd := &fakeDispatcher{block: signal.Key{Code: CodeButtonLeft, Dir: key.DirDown}}
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	var observed []Decision
	src := NewSource(nil, fd,
		WithObserver(func(d Decision) { observed = append(observed, d) }),
		WithClock(func() time.Time { return at }),
	)

	decisions := src.Handle(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModShift))
	if len(decisions) != 2 {
		t.Fatalf("Handle() returned %d decisions, want 2", len(decisions))
	}
	if decisions[0].Blocked {
		t.Error("cursor move should pass")
	}
	if !decisions[1].Blocked {
		t.Error("left press should be blocked")
	}
	if decisions[1].Mods != key.ModShift || !decisions[1].At.Equal(at) {
		t.Errorf("decision = %+v", decisions[1])
	}
	if len(observed) != 2 {
		t.Errorf("observer saw %d decisions, want 2", len(observed))
	}
	if got := decisions[1].String(); got != "block key Code(272):down mods=Shift" {
		t.Errorf("String() = %q", got)
	}
	if got := decisions[0].String(); got != "pass  cursor absolute (1,1,0) mods=Shift" {
		t.Errorf("String() = %q", got)
	}

	if got := src.Handle(tcell.NewEventInterrupt(nil)); got != nil {
		t.Errorf("Handle(interrupt) = %v, want nil", got)
	}
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

func TestSourceRunQuitKey(t *testing.T) {
	screen := newScreen(t)
	fd := &fakeDispatcher{}
	src := NewSource(screen, fd, WithQuitKey(tcell.KeyF10))

	done := make(chan error, 1)
	go func() { done <- src.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyF10, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop on the quit key")
	}

	var keys []signal.Signal
	for _, in := range fd.got {
		if in.Signal.Kind() == signal.KindKey {
			keys = append(keys, in.Signal)
		}
	}
	if len(keys) != 1 || !signal.Equal(keys[0], signal.Key{Code: key.CodeQ, Dir: key.DirDown}) {
		t.Errorf("dispatched keys %v, want one q press", keys)
	}
}

func TestSourceRunContext(t *testing.T) {
	screen := newScreen(t)
	src := NewSource(screen, &fakeDispatcher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop on cancel")
	}
}

func TestView(t *testing.T) {
	v := NewView("stagehook", 3)
	for i := range 5 {
		v.Add(Decision{Signal: signal.Echo{ID: int64(i)}, Blocked: i%2 == 0})
	}

	lines := v.Lines()
	want := []string{"block echo 2", "pass  echo 3", "block echo 4"}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	screen := newScreen(t)
	screen.SetSize(20, 3)
	v.Draw(screen)

	row := func(y int) string {
		var out []rune
		for x := range 12 {
			r, _, _, _ := screen.GetContent(x, y)
			out = append(out, r)
		}
		return string(out)
	}
	if got := row(0); got[:9] != "stagehook" {
		t.Errorf("header row = %q", got)
	}
	// Two rows remain, so only the newest two decisions are drawn.
	if got := row(1); got != "pass  echo 3" {
		t.Errorf("row 1 = %q", got)
	}
	if got := row(2); got != "block echo 4" {
		t.Errorf("row 2 = %q", got)
	}

	v.Note("fired save")
	if lines := v.Lines(); lines[len(lines)-1] != "fired save" || len(lines) != 3 {
		t.Errorf("Lines() after Note = %v", lines)
	}
}

package signal

import (
	"errors"
	"testing"

	"github.com/dshills/stagehook/internal/input/key"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindGeneric, "generic"},
		{KindKey, "key"},
		{KindCursor, "cursor"},
		{KindScroll, "scroll"},
		{KindEcho, "echo"},
		{Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = (%v, %v), want %v", k.String(), got, err, k)
		}
	}
	if got, _ := ParseKind("MoveCursor"); got != KindCursor {
		t.Errorf("ParseKind(MoveCursor) = %v, want cursor", got)
	}
	if _, err := ParseKind("joystick"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(joystick) error = %v, want ErrUnknownKind", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		sig  Signal
		want Kind
	}{
		{nil, KindGeneric},
		{Key{Code: key.CodeA}, KindKey},
		{Cursor{}, KindCursor},
		{Scroll{}, KindScroll},
		{Echo{ID: 3}, KindEcho},
		{Generic{Name: "power"}, KindGeneric},
	}

	for _, tt := range tests {
		if got := KindOf(tt.sig); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.sig, got, tt.want)
		}
	}
}

func TestSignalString(t *testing.T) {
	tests := []struct {
		sig  Signal
		want string
	}{
		{Key{Code: key.CodeA, Dir: key.DirDown}, "key a:down"},
		{Key{}, "key Any"},
		{Cursor{X: 1, Y: -2, Mode: CursorRelative}, "cursor relative (1,-2,0)"},
		{Scroll{DY: -1}, "scroll (0,-1,0)"},
		{Echo{ID: AnyEcho}, "echo any"},
		{Echo{ID: 7}, "echo 7"},
		{Generic{Code: 9}, "generic 9"},
	}

	for _, tt := range tests {
		if got := tt.sig.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCursorResemblesTolerance(t *testing.T) {
	tmpl := Cursor{X: 100, Y: 200, Mode: CursorAbsolute}

	tests := []struct {
		name string
		in   Cursor
		tol  uint32
		want bool
	}{
		{"exact", Cursor{X: 100, Y: 200, Mode: CursorAbsolute}, 0, true},
		{"delta equals tolerance", Cursor{X: 105, Y: 195, Mode: CursorAbsolute}, 5, true},
		{"delta exceeds tolerance", Cursor{X: 106, Y: 200, Mode: CursorAbsolute}, 5, false},
		{"negative side exceeds", Cursor{X: 100, Y: 194, Mode: CursorAbsolute}, 5, false},
		{"mode mismatch", Cursor{X: 100, Y: 200, Mode: CursorRelative}, 5, false},
		{"event mode unknown", Cursor{X: 100, Y: 200}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tmpl.Resembles(tt.in, tt.tol); got != tt.want {
				t.Errorf("Resembles(%v, %d) = %v, want %v", tt.in, tt.tol, got, tt.want)
			}
		})
	}
}

func TestCursorResemblesExtremes(t *testing.T) {
	a := Cursor{X: -1 << 31}
	b := Cursor{X: 1<<31 - 1}
	if a.Resembles(b, 1<<32-1) != true {
		t.Error("full-range tolerance should cover the whole int32 span")
	}
	if a.Resembles(b, 10) {
		t.Error("extreme coordinates should not overflow into a match")
	}
}

func TestScrollResemblesFromZero(t *testing.T) {
	tests := []struct {
		name string
		tmpl Scroll
		in   Scroll
		tol  uint32
		want bool
	}{
		{"wildcard axes", Scroll{}, Scroll{DX: 4, DY: -9}, 0, true},
		{"same notch", Scroll{DY: 1}, Scroll{DY: 1}, 0, true},
		{"bigger within tolerance", Scroll{DY: 1}, Scroll{DY: 3}, 2, true},
		{"bigger beyond tolerance", Scroll{DY: 1}, Scroll{DY: 4}, 2, false},
		{"opposite direction", Scroll{DY: 1}, Scroll{DY: -1}, 5, false},
		{"no movement on required axis", Scroll{DY: -2}, Scroll{DX: 3}, 5, false},
		{"negative magnitudes", Scroll{DY: -2}, Scroll{DY: -3}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tmpl.ResemblesFromZero(tt.in, tt.tol); got != tt.want {
				t.Errorf("ResemblesFromZero = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a := Key{Code: key.CodeA, Dir: key.DirDown}
	b := Key{Code: key.CodeB, Dir: key.DirDown}

	if Compare(a, a) != 0 || !Equal(a, Key{Code: key.CodeA, Dir: key.DirDown}) {
		t.Error("identical keys should compare equal")
	}
	if Compare(a, b) >= 0 || Compare(b, a) <= 0 {
		t.Error("key a should order before key b")
	}
	if Compare(nil, a) >= 0 || Compare(a, nil) <= 0 || Compare(nil, nil) != 0 {
		t.Error("nil should order first")
	}
	if Compare(Key{}, Cursor{}) >= 0 {
		t.Error("kinds should order by discriminant")
	}
	if Equal(Echo{ID: 1}, Echo{ID: 2}) {
		t.Error("different echo ids should not be equal")
	}
}

package key

import (
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeNone, "Any"},
		{CodeEscape, "Esc"},
		{CodeEnter, "Enter"},
		{CodeA, "a"},
		{CodeX, "x"},
		{CodeF1, "F1"},
		{CodeF12, "F12"},
		{CodeLeftCtrl, "LeftCtrl"},
		{Code(250), "Code(250)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("Code.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Code
		wantOK bool
	}{
		{"escape", CodeEscape, true},
		{"ESC", CodeEscape, true},
		{"Enter", CodeEnter, true},
		{"cr", CodeEnter, true},
		{"a", CodeA, true},
		{"A", CodeA, true},
		{"!", Code1, true},
		{"any", CodeNone, true},
		{"code:30", CodeA, true},
		{"code:0x1e", CodeA, true},
		{"code:nope", CodeNone, false},
		{"unknown", CodeNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodeFromName(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CodeFromName(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	if !DirBoth.Matches(DirDown) || !DirBoth.Matches(DirUp) {
		t.Error("DirBoth should match both edges")
	}
	if !DirDown.Matches(DirDown) {
		t.Error("DirDown should match DirDown")
	}
	if DirDown.Matches(DirUp) {
		t.Error("DirDown should not match DirUp")
	}

	for _, name := range []string{"down", "press", "DOWN"} {
		if d, ok := DirectionFromName(name); !ok || d != DirDown {
			t.Errorf("DirectionFromName(%q) = (%v, %v), want (down, true)", name, d, ok)
		}
	}
	if _, ok := DirectionFromName("sideways"); ok {
		t.Error("DirectionFromName should reject unknown names")
	}
}

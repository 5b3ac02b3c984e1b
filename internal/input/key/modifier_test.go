package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.HasCtrl() || !m.HasShift() {
		t.Error("expected Ctrl and Shift")
	}
	if m.HasAlt() || m.HasMeta() {
		t.Error("did not expect Alt or Meta")
	}
	if got := ModShift.With(ModCtrl); got != m {
		t.Errorf("With(ModCtrl) = %v, want %v", got, m)
	}
	if got := m.ShortString(); got != "C-S" {
		t.Errorf("ShortString() = %q, want %q", got, "C-S")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, "none"},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModCtrl | ModShift | ModMeta, "Ctrl+Shift+Meta"},
		{ModCapsLock, "CapsLock"},
	}

	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		in     string
		want   Modifier
		wantOK bool
	}{
		{"", ModNone, true},
		{"none", ModNone, true},
		{"ctrl", ModCtrl, true},
		{"Ctrl+Alt", ModCtrl | ModAlt, true},
		{"C-S", ModCtrl | ModShift, true},
		{"cmd+shift", ModMeta | ModShift, true},
		{"hyper", ModNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseModifiers(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseModifiers(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

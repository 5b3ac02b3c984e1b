package key

import "strings"

// Modifier represents the modifier keys held while an event occurred.
// Multiple modifiers are combined with bitwise OR.
type Modifier uint32

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModCapsLock indicates Caps Lock is latched.
	ModCapsLock

	// ModNumLock indicates Num Lock is latched.
	ModNumLock
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	if m.Has(ModCapsLock) {
		parts = append(parts, "CapsLock")
	}
	if m.Has(ModNumLock) {
		parts = append(parts, "NumLock")
	}
	return strings.Join(parts, "+")
}

// ShortString returns a compact representation like "C-A-S-M".
func (m Modifier) ShortString() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "C")
	}
	if m.HasAlt() {
		parts = append(parts, "A")
	}
	if m.HasShift() {
		parts = append(parts, "S")
	}
	if m.HasMeta() {
		parts = append(parts, "M")
	}
	return strings.Join(parts, "-")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"none":     ModNone,
	"ctrl":     ModCtrl,
	"control":  ModCtrl,
	"c":        ModCtrl,
	"alt":      ModAlt,
	"a":        ModAlt,
	"option":   ModAlt,
	"opt":      ModAlt,
	"shift":    ModShift,
	"s":        ModShift,
	"meta":     ModMeta,
	"m":        ModMeta,
	"cmd":      ModMeta,
	"command":  ModMeta,
	"win":      ModMeta,
	"super":    ModMeta,
	"d":        ModMeta, // Vim uses D for command/meta
	"capslock": ModCapsLock,
	"numlock":  ModNumLock,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// The second result is false if the name is not recognized.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ParseModifiers parses a modifier string like "Ctrl+Alt", "C-A" or "none".
// Unknown names are reported through the second result.
func ParseModifiers(s string) (Modifier, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModNone, true
	}

	sep := "+"
	if !strings.Contains(s, "+") && strings.Contains(s, "-") {
		sep = "-"
	}

	var mods Modifier
	for _, p := range strings.Split(s, sep) {
		mod, ok := ModifierFromName(p)
		if !ok {
			return ModNone, false
		}
		mods = mods.With(mod)
	}
	return mods, true
}

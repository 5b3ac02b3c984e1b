package key

import (
	"fmt"
	"strings"
)

// Event is a key specification: the fields a hook reports for one key
// stroke, or the template a hotkey stage compares against.
type Event struct {
	// Code identifies the key. CodeNone matches any key.
	Code Code

	// Scan is the hardware scan code. Zero matches any scan code.
	Scan uint16

	// Dir is the stroke direction. DirBoth matches presses and releases.
	Dir Direction

	// Modifiers contains the modifier keys named by the specification.
	Modifiers Modifier

	// HasModifiers is true when the specification named modifiers
	// explicitly (including "none"). When false the modifier state is
	// left unconstrained.
	HasModifiers bool
}

// IsModified returns true if any modifier is required.
func (e Event) IsModified() bool {
	return e.HasModifiers && e.Modifiers != ModNone
}

// String returns a canonical string representation.
// Examples: "a", "C-s", "C-x:up", "Esc:down", "Any"
func (e Event) String() string {
	var sb strings.Builder
	if e.IsModified() {
		sb.WriteString(e.Modifiers.ShortString())
		sb.WriteByte('-')
	}
	sb.WriteString(e.Code.String())
	if e.Scan != 0 {
		fmt.Fprintf(&sb, "#%d", e.Scan)
	}
	if !e.Dir.IsWildcard() {
		sb.WriteByte(':')
		sb.WriteString(e.Dir.String())
	}
	return sb.String()
}

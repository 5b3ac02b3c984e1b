package signal

import (
	"fmt"

	"github.com/dshills/stagehook/internal/input/key"
)

// Signal is one intercepted hardware event.
type Signal interface {
	// Kind returns the discriminant of the concrete type.
	Kind() Kind

	// String returns a compact description for logs and reports.
	String() string
}

// KindOf returns the kind of s, treating a nil signal as generic.
func KindOf(s Signal) Kind {
	if s == nil {
		return KindGeneric
	}
	return s.Kind()
}

// Key is a key press or release.
type Key struct {
	// Code is the key code. key.CodeNone matches any key in a template.
	Code key.Code

	// Scan is the hardware scan code. Zero matches any scan code in a template.
	Scan uint16

	// Dir is the stroke direction. key.DirBoth matches either edge in a template.
	Dir key.Direction
}

// NewKey builds a key signal from a parsed key specification.
func NewKey(e key.Event) Key {
	return Key{Code: e.Code, Scan: e.Scan, Dir: e.Dir}
}

// Kind implements Signal.
func (Key) Kind() Kind { return KindKey }

// String implements Signal.
func (k Key) String() string {
	return "key " + key.Event{Code: k.Code, Scan: k.Scan, Dir: k.Dir}.String()
}

// CursorMode describes how cursor coordinates are interpreted.
type CursorMode uint8

const (
	// CursorAny matches relative and absolute movement in a template.
	CursorAny CursorMode = iota
	// CursorRelative carries deltas from the previous position.
	CursorRelative
	// CursorAbsolute carries screen coordinates.
	CursorAbsolute
)

// String returns the mode name.
func (m CursorMode) String() string {
	switch m {
	case CursorRelative:
		return "relative"
	case CursorAbsolute:
		return "absolute"
	default:
		return "any"
	}
}

// Compatible reports whether a template mode m accepts an event in mode other.
func (m CursorMode) Compatible(other CursorMode) bool {
	return m == CursorAny || other == CursorAny || m == other
}

// Cursor is a pointer movement.
type Cursor struct {
	X, Y, Z int32
	Mode    CursorMode
}

// Kind implements Signal.
func (Cursor) Kind() Kind { return KindCursor }

// String implements Signal.
func (c Cursor) String() string {
	return fmt.Sprintf("cursor %s (%d,%d,%d)", c.Mode, c.X, c.Y, c.Z)
}

// Scroll is a wheel movement. Positive DY scrolls up, positive DX scrolls right.
type Scroll struct {
	DX, DY, DZ int32
}

// Kind implements Signal.
func (Scroll) Kind() Kind { return KindScroll }

// String implements Signal.
func (s Scroll) String() string {
	return fmt.Sprintf("scroll (%d,%d,%d)", s.DX, s.DY, s.DZ)
}

// AnyEcho is the echo id that matches every echo report in a template.
const AnyEcho int64 = -1

// Echo is a HID echo report. Hooks emit echoes for events they injected
// themselves so that macros can synchronize with their own output.
type Echo struct {
	ID int64
}

// Kind implements Signal.
func (Echo) Kind() Kind { return KindEcho }

// String implements Signal.
func (e Echo) String() string {
	if e.ID == AnyEcho {
		return "echo any"
	}
	return fmt.Sprintf("echo %d", e.ID)
}

// Generic is an event the hook could not classify.
type Generic struct {
	Code uint32
	Name string
}

// Kind implements Signal.
func (Generic) Kind() Kind { return KindGeneric }

// String implements Signal.
func (g Generic) String() string {
	if g.Name != "" {
		return "generic " + g.Name
	}
	return fmt.Sprintf("generic %d", g.Code)
}

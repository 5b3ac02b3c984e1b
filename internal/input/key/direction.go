package key

import "strings"

// Direction describes which edge of a key stroke an event reports.
type Direction uint8

const (
	// DirBoth matches presses and releases. It is the zero value so that an
	// unset direction in a template is a wildcard.
	DirBoth Direction = iota

	// DirDown is a key press (including autorepeat).
	DirDown

	// DirUp is a key release.
	DirUp
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "both"
	}
}

// IsWildcard returns true if the direction matches presses and releases.
func (d Direction) IsWildcard() bool {
	return d == DirBoth
}

// Matches reports whether an event travelling in direction other satisfies d.
func (d Direction) Matches(other Direction) bool {
	return d == DirBoth || d == other
}

// DirectionFromName parses "down", "up" or "both" (case-insensitive).
// "press" and "release" are accepted as aliases.
func DirectionFromName(name string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "both", "any":
		return DirBoth, true
	case "down", "press":
		return DirDown, true
	case "up", "release":
		return DirUp, true
	default:
		return DirBoth, false
	}
}

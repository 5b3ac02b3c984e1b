package signal

import (
	"fmt"
	"strings"
)

// Kind discriminates the closed set of signal types.
type Kind uint8

const (
	// KindGeneric is an event of no specific kind.
	KindGeneric Kind = iota
	// KindKey is a key press or release.
	KindKey
	// KindCursor is a pointer movement.
	KindCursor
	// KindScroll is a wheel movement.
	KindScroll
	// KindEcho is a HID echo report.
	KindEcho
)

// kindNames is indexed by Kind.
var kindNames = [...]string{
	KindGeneric: "generic",
	KindKey:     "key",
	KindCursor:  "cursor",
	KindScroll:  "scroll",
	KindEcho:    "echo",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid returns true if k is one of the defined kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindGeneric, KindKey, KindCursor, KindScroll, KindEcho}
}

// ParseKind parses a kind name (case-insensitive). "movecursor" and
// "hidecho" are accepted as aliases.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "generic":
		return KindGeneric, nil
	case "key":
		return KindKey, nil
	case "cursor", "movecursor", "move":
		return KindCursor, nil
	case "scroll", "wheel":
		return KindScroll, nil
	case "echo", "hidecho":
		return KindEcho, nil
	default:
		return KindGeneric, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

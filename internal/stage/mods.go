package stage

import (
	"cmp"

	"github.com/dshills/stagehook/internal/input/key"
)

// Mods is a stage's modifier filter: either any modifier state, or exactly
// one mask.
type Mods struct {
	mask  key.Modifier
	exact bool
}

// AnyMods returns a filter that accepts every modifier state.
func AnyMods() Mods {
	return Mods{}
}

// ExactMods returns a filter that accepts only m.
func ExactMods(m key.Modifier) Mods {
	return Mods{mask: m, exact: true}
}

// ModsFromEvent returns the filter implied by a parsed key specification.
func ModsFromEvent(e key.Event) Mods {
	if !e.HasModifiers {
		return AnyMods()
	}
	return ExactMods(e.Modifiers)
}

// IsAny returns true if the filter accepts every modifier state.
func (m Mods) IsAny() bool {
	return !m.exact
}

// Value returns the required mask and whether one is required.
func (m Mods) Value() (key.Modifier, bool) {
	return m.mask, m.exact
}

// Allows reports whether the current modifier state passes the filter.
func (m Mods) Allows(current key.Modifier) bool {
	return !m.exact || m.mask == current
}

// String returns "any" or the required modifiers.
func (m Mods) String() string {
	if !m.exact {
		return "any"
	}
	return m.mask.String()
}

// compare orders filters: any first, then by mask.
func (m Mods) compare(o Mods) int {
	if m.exact != o.exact {
		if !m.exact {
			return -1
		}
		return 1
	}
	return cmp.Compare(m.mask, o.mask)
}

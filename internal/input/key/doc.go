// Package key provides hardware key identifiers and key specification parsing.
//
// This package defines the fundamental types for describing keyboard input at
// the hook level:
//
//   - Code: A hardware key code using the Linux evdev numbering (KEY_A = 30).
//     Code 0 (CodeNone) is the wildcard "any key".
//   - Direction: Whether the event is a key press, a key release, or either.
//     DirBoth is the zero value and the wildcard.
//   - Modifier: A bit mask of the modifier keys held while the event occurred.
//   - Event: A key specification (code, scan code, direction, modifiers).
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "1", "Enter", "Escape", "F5"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//   - With a direction suffix: "a:down", "Ctrl+X:up", "<C-x>:both"
//
// A specification without modifiers leaves the modifier filter open; a
// specification with modifiers requires exactly those modifiers.
//
// # Key Sequences
//
// Chorded hotkeys such as "Ctrl+X then S released" are written as a
// space-separated sequence ("Ctrl+X s:up") and parsed with ParseSequence.
package key

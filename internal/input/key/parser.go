package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "1", "@" (resolved on a US layout)
//   - Key names: "Enter", "Escape", "Tab", "F5", "LeftCtrl", "Any", "code:30"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P", "None+A"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//   - Direction suffix: "a:down", "Ctrl+X:up", "<Esc>:both"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	spec, dir := splitDirection(spec)

	var (
		event Event
		err   error
	)
	switch {
	case len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">"):
		event, err = parseVimStyle(spec[1 : len(spec)-1])
	case len(spec) > 1 && strings.Contains(spec, "+"):
		event, err = parseModifierStyle(spec)
	default:
		event, err = parseKey(spec, ModNone, false)
	}
	if err != nil {
		return Event{}, err
	}

	event.Dir = dir
	return event, nil
}

// splitDirection strips a trailing ":down", ":up" or ":both".
func splitDirection(spec string) (string, Direction) {
	i := strings.LastIndexByte(spec, ':')
	if i <= 0 || i == len(spec)-1 {
		return spec, DirBoth
	}
	dir, ok := DirectionFromName(spec[i+1:])
	if !ok {
		return spec, DirBoth
	}
	return strings.TrimSpace(spec[:i]), dir
}

// parseVimStyle parses Vim-style notation like "C-s", "A-F4", "CR", "Esc"
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	// Split by hyphen to get modifiers and key
	parts := strings.Split(inner, "-")
	if len(parts) == 1 {
		return parseKey(parts[0], ModNone, false)
	}

	// Last part is the key, rest are modifiers
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d": // D is Vim's notation for Command/Meta
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseKey(parts[len(parts)-1], mods, true)
}

// parseModifierStyle parses "Ctrl+S" style notation
func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	if len(parts) < 2 {
		return Event{}, ErrInvalidSpec
	}

	var mods Modifier

	// All but the last part are modifiers
	for _, p := range parts[:len(parts)-1] {
		mod, ok := ModifierFromName(p)
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	return parseKey(parts[len(parts)-1], mods, true)
}

// parseKey resolves the key part with already-known modifiers.
func parseKey(keyPart string, mods Modifier, hasMods bool) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	code, ok := CodeFromName(keyPart)
	if !ok {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	return Event{Code: code, Modifiers: mods, HasModifiers: hasMods}, nil
}

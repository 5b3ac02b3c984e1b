package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed scenario.
type File struct {
	// Name identifies the scenario in reports.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// Hotkeys are registered in order; order is dispatch order.
	Hotkeys []Hotkey `yaml:"hotkeys"`

	// Signals are dispatched in order.
	Signals []Step `yaml:"signals"`
}

// Hotkey defines one container. Exactly one of Keys or Stages is set.
type Hotkey struct {
	Name string `yaml:"name"`

	// Keys is a key sequence shorthand, e.g. "Ctrl+X:down s:up". Each key
	// becomes one key stage.
	Keys string `yaml:"keys,omitempty"`

	// Blocking is the default blocking flag of every stage.
	Blocking bool `yaml:"blocking,omitempty"`

	// Stages lists the stages explicitly.
	Stages []StageSpec `yaml:"stages,omitempty"`

	// Kinds restricts routing to the named kinds. By default the container
	// is routed for every kind one of its stages can match.
	Kinds []string `yaml:"kinds,omitempty"`

	// Disabled hotkeys are listed in the report but never registered.
	Disabled bool `yaml:"disabled,omitempty"`
}

// StageSpec defines one stage. Exactly one of Key, Cursor, Scroll, Echo,
// Kind or Any is set.
type StageSpec struct {
	Key    string      `yaml:"key,omitempty"`
	Cursor *CursorSpec `yaml:"cursor,omitempty"`
	Scroll *ScrollSpec `yaml:"scroll,omitempty"`

	// Echo is "any" or a numeric echo id.
	Echo string `yaml:"echo,omitempty"`

	// Kind matches any signal of the named kind.
	Kind string `yaml:"kind,omitempty"`

	// Any matches every signal.
	Any bool `yaml:"any,omitempty"`

	// Mods is "any" or a modifier list such as "Ctrl+Alt" or "none". When
	// empty, key stages take the modifiers named in Key, if any.
	Mods string `yaml:"mods,omitempty"`

	// Blocking overrides the hotkey's default.
	Blocking *bool `yaml:"blocking,omitempty"`

	// Tolerance is the per-axis tolerance of cursor and scroll stages.
	Tolerance uint32 `yaml:"tolerance,omitempty"`
}

// CursorSpec is a cursor position. Mode is "relative", "absolute" or empty
// for either.
type CursorSpec struct {
	X    int32  `yaml:"x"`
	Y    int32  `yaml:"y"`
	Z    int32  `yaml:"z,omitempty"`
	Mode string `yaml:"mode,omitempty"`
}

// ScrollSpec is a wheel delta.
type ScrollSpec struct {
	DX int32 `yaml:"dx,omitempty"`
	DY int32 `yaml:"dy,omitempty"`
	DZ int32 `yaml:"dz,omitempty"`
}

// Step is one entry of the signal stream: either a signal (Key, Cursor,
// Scroll, Echo or Generic) or a control step (Enable or Disable).
type Step struct {
	Key     string      `yaml:"key,omitempty"`
	Cursor  *CursorSpec `yaml:"cursor,omitempty"`
	Scroll  *ScrollSpec `yaml:"scroll,omitempty"`
	Echo    *int64      `yaml:"echo,omitempty"`
	Generic string      `yaml:"generic,omitempty"`

	// Mods is the modifier state while the signal occurs. When empty, key
	// steps take the modifiers named in Key and other steps have none.
	Mods string `yaml:"mods,omitempty"`

	// Repeat dispatches the signal this many times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`

	// Enable and Disable name a kind to switch on or off.
	Enable  string `yaml:"enable,omitempty"`
	Disable string `yaml:"disable,omitempty"`
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario. Unknown fields are rejected so that typos do
// not silently drop stages.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the structure of the file without compiling stages.
func (f *File) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	seen := make(map[string]bool, len(f.Hotkeys))
	for i, h := range f.Hotkeys {
		if h.Name == "" {
			return fmt.Errorf("%w: hotkeys[%d]: name is required", ErrInvalidScenario, i)
		}
		if seen[h.Name] {
			return fmt.Errorf("%w: hotkey %q defined twice", ErrInvalidScenario, h.Name)
		}
		seen[h.Name] = true
		if (h.Keys == "") == (len(h.Stages) == 0) {
			return fmt.Errorf("%w: hotkey %q: exactly one of keys or stages is required", ErrInvalidScenario, h.Name)
		}
	}
	for i, s := range f.Signals {
		if s.Repeat < 0 {
			return fmt.Errorf("%w: signals[%d]: negative repeat", ErrInvalidScenario, i)
		}
	}
	return nil
}

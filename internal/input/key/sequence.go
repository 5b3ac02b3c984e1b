package key

import (
	"strings"
)

// Sequence represents the ordered key strokes of a chorded hotkey.
// Examples: "Ctrl+X s:up", "<C-k> <C-c>", "LeftCtrl:down a:down"
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Events: make([]Event, 0, 4), // Most chords are short
	}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// ParseSequence parses a space-separated list of key specifications.
// Examples: "Ctrl+X s:up", "<C-k><C-c>", "a:down a:up"
//
// Adjacent Vim-style groups without separating spaces are split as well.
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	seq := NewSequence()
	if s == "" {
		return seq, nil
	}

	for _, field := range strings.Fields(s) {
		for _, part := range splitVimGroups(field) {
			event, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq.Add(event)
		}
	}

	return seq, nil
}

// splitVimGroups splits "<C-k><C-c>:up" into "<C-k>" and "<C-c>:up".
// Fields that are not a run of <...> groups are returned unchanged.
func splitVimGroups(field string) []string {
	if !strings.HasPrefix(field, "<") || strings.Count(field, "<") < 2 {
		return []string{field}
	}

	var parts []string
	rest := field
	for rest != "" {
		if rest[0] != '<' {
			return []string{field}
		}
		end := strings.IndexByte(rest, '>')
		if end == -1 {
			return []string{field}
		}
		next := end + 1
		// Keep an attached ":dir" suffix with its group.
		if next < len(rest) && rest[next] == ':' {
			stop := strings.IndexByte(rest[next:], '<')
			if stop == -1 {
				next = len(rest)
			} else {
				next += stop
			}
		}
		parts = append(parts, rest[:next])
		rest = rest[next:]
	}
	return parts
}

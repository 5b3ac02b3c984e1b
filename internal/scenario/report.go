package scenario

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Report is the outcome of one replay.
type Report struct {
	Scenario    string         `yaml:"scenario"`
	Hotkeys     []HotkeyReport `yaml:"hotkeys"`
	Steps       []StepReport   `yaml:"steps"`
	Completions []Completion   `yaml:"completions"`
	Metrics     []KindReport   `yaml:"metrics"`
}

// HotkeyReport describes a compiled hotkey.
type HotkeyReport struct {
	Name     string   `yaml:"name"`
	Stages   string   `yaml:"stages"`
	Routed   []string `yaml:"routed,omitempty"`
	Disabled bool     `yaml:"disabled,omitempty"`
}

// StepReport is the decision for one dispatched signal, or a control step.
type StepReport struct {
	Index int `yaml:"index"`

	// Control is set for enable/disable steps; the other fields are empty.
	Control string `yaml:"control,omitempty"`

	Signal     string          `yaml:"signal,omitempty"`
	Mods       string          `yaml:"mods,omitempty"`
	Decision   string          `yaml:"decision,omitempty"`
	Suppressed bool            `yaml:"suppressed,omitempty"`
	Fired      []string        `yaml:"fired,omitempty"`
	Errors     []string        `yaml:"errors,omitempty"`
	Progress   []ProgressEntry `yaml:"progress,omitempty"`
}

// ProgressEntry is one hotkey's progress after a step.
type ProgressEntry struct {
	Name     string `yaml:"name"`
	Progress string `yaml:"progress"`
}

// Completion counts how often a hotkey fired.
type Completion struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// KindReport holds the dispatcher counters for one kind.
type KindReport struct {
	Kind        string `yaml:"kind"`
	Dispatches  uint64 `yaml:"dispatches"`
	Blocked     uint64 `yaml:"blocked"`
	Completions uint64 `yaml:"completions"`
	Suppressed  uint64 `yaml:"suppressed"`
	Dropped     uint64 `yaml:"dropped"`
	Panics      uint64 `yaml:"panics"`
}

// Blocked returns the number of dispatched steps that were blocked.
func (r *Report) Blocked() int {
	n := 0
	for _, s := range r.Steps {
		if s.Decision == "block" {
			n++
		}
	}
	return n
}

// Text renders the report one line per entry.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario)
	for _, h := range r.Hotkeys {
		fmt.Fprintf(&b, "hotkey %s", h.Stages)
		if h.Disabled {
			b.WriteString(" disabled\n")
			continue
		}
		fmt.Fprintf(&b, " routed=%s\n", strings.Join(h.Routed, ","))
	}
	for _, s := range r.Steps {
		b.WriteString(s.line())
		b.WriteByte('\n')
	}

	counts := make([]string, len(r.Completions))
	for i, c := range r.Completions {
		counts[i] = fmt.Sprintf("%s=%d", c.Name, c.Count)
	}
	if len(counts) == 0 {
		b.WriteString("completions: none\n")
	} else {
		fmt.Fprintf(&b, "completions: %s\n", strings.Join(counts, ", "))
	}

	for _, m := range r.Metrics {
		fmt.Fprintf(&b, "metrics %s: dispatches=%d blocked=%d completions=%d suppressed=%d dropped=%d panics=%d\n",
			m.Kind, m.Dispatches, m.Blocked, m.Completions, m.Suppressed, m.Dropped, m.Panics)
	}
	return b.String()
}

func (s StepReport) line() string {
	if s.Control != "" {
		return fmt.Sprintf("step %d: %s", s.Index, s.Control)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "step %d: %s", s.Index, s.Signal)
	if s.Mods != "" {
		fmt.Fprintf(&b, " mods=%s", s.Mods)
	}
	fmt.Fprintf(&b, " -> %s", s.Decision)
	if s.Suppressed {
		b.WriteString(" disabled")
	}
	if len(s.Fired) > 0 {
		fmt.Fprintf(&b, " fired=%s", strings.Join(s.Fired, ","))
	}
	for _, e := range s.Errors {
		fmt.Fprintf(&b, " error=%q", e)
	}
	if len(s.Progress) > 0 {
		parts := make([]string, len(s.Progress))
		for i, p := range s.Progress {
			parts[i] = p.Name + " " + p.Progress
		}
		fmt.Fprintf(&b, " | %s", strings.Join(parts, ", "))
	}
	return b.String()
}

// WriteText writes the text rendering to w.
func (r *Report) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, r.Text())
	return err
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

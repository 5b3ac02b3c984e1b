package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// String returns the verb padded to five columns, the signal and the
// modifiers if any.
func (d Decision) String() string {
	verb := "pass "
	if d.Blocked {
		verb = "block"
	}
	s := verb + " " + d.Signal.String()
	if d.Mods != 0 {
		s += " mods=" + d.Mods.String()
	}
	return s
}

type line struct {
	text      string
	highlight bool
}

// View keeps the most recent lines and draws them on a screen. It is safe
// for concurrent use, so completion handlers running on worker goroutines
// can add notes while the source adds decisions.
type View struct {
	mu     sync.Mutex
	header string
	max    int
	lines  []line
}

// NewView creates a view holding at most size lines.
func NewView(header string, size int) *View {
	return &View{header: header, max: max(size, 1)}
}

// Add records a decision. Blocked decisions are highlighted.
func (v *View) Add(d Decision) {
	v.push(line{text: d.String(), highlight: d.Blocked})
}

// Note records a free-form line.
func (v *View) Note(text string) {
	v.push(line{text: text})
}

func (v *View) push(l line) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lines = append(v.lines, l)
	if over := len(v.lines) - v.max; over > 0 {
		v.lines = append(v.lines[:0], v.lines[over:]...)
	}
}

// Lines returns the recorded lines, oldest first.
func (v *View) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.lines))
	for i, l := range v.lines {
		out[i] = l.text
	}
	return out
}

// Draw renders the header and as many lines as fit, newest at the bottom.
func (v *View) Draw(screen tcell.Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()

	screen.Clear()
	w, h := screen.Size()
	drawText(screen, 0, 0, w, v.header, tcell.StyleDefault.Bold(true))

	rows := max(h-1, 0)
	start := max(len(v.lines)-rows, 0)
	for i, l := range v.lines[start:] {
		style := tcell.StyleDefault
		if l.highlight {
			style = style.Foreground(tcell.ColorRed)
		}
		drawText(screen, 0, i+1, w, l.text, style)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

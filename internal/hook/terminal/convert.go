package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// Mouse button codes (linux/input-event-codes.h).
const (
	CodeButtonLeft   key.Code = 0x110
	CodeButtonRight  key.Code = 0x111
	CodeButtonMiddle key.Code = 0x112
)

// Input is one converted signal with the modifiers held at the time.
type Input struct {
	Signal signal.Signal
	Mods   key.Modifier
}

// namedKeys maps tcell special keys to key codes. It is consulted before
// the control-letter range because tcell aliases Tab, Enter and Backspace
// to Ctrl+I, Ctrl+M and Ctrl+H.
var namedKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBacktab:    key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyPause:      key.CodePause,
	tcell.KeyF1:         key.CodeF1,
	tcell.KeyF2:         key.CodeF2,
	tcell.KeyF3:         key.CodeF3,
	tcell.KeyF4:         key.CodeF4,
	tcell.KeyF5:         key.CodeF5,
	tcell.KeyF6:         key.CodeF6,
	tcell.KeyF7:         key.CodeF7,
	tcell.KeyF8:         key.CodeF8,
	tcell.KeyF9:         key.CodeF9,
	tcell.KeyF10:        key.CodeF10,
	tcell.KeyF11:        key.CodeF11,
	tcell.KeyF12:        key.CodeF12,
}

// mouseButtons pairs tcell buttons with their codes, in report order.
var mouseButtons = []struct {
	mask tcell.ButtonMask
	code key.Code
}{
	{tcell.Button1, CodeButtonLeft},
	{tcell.Button2, CodeButtonRight},
	{tcell.Button3, CodeButtonMiddle},
}

// Converter turns tcell events into signals. It remembers the pointer
// position and the pressed buttons so that mouse events can be split into
// motion, button edges and wheel notches.
//
// A Converter is not safe for concurrent use.
type Converter struct {
	buttons tcell.ButtonMask
	x, y    int
	seen    bool
}

// Convert returns the signals carried by ev, in the order they should be
// dispatched. Events with no input meaning yield nil.
func (c *Converter) Convert(ev tcell.Event) []Input {
	switch e := ev.(type) {
	case *tcell.EventKey:
		in, ok := convertKey(e)
		if !ok {
			return nil
		}
		return []Input{in}
	case *tcell.EventMouse:
		return c.convertMouse(e)
	case *tcell.EventResize:
		return []Input{{Signal: signal.Generic{Name: "resize"}}}
	case *tcell.EventFocus:
		name := "blur"
		if e.Focused {
			name = "focus"
		}
		return []Input{{Signal: signal.Generic{Name: name}}}
	case *tcell.EventPaste:
		name := "paste-end"
		if e.Start() {
			name = "paste-start"
		}
		return []Input{{Signal: signal.Generic{Name: name}}}
	default:
		return nil
	}
}

func convertKey(e *tcell.EventKey) (Input, bool) {
	mods := convertMod(e.Modifiers())

	if code, ok := namedKeys[e.Key()]; ok {
		if e.Key() == tcell.KeyBacktab {
			mods |= key.ModShift
		}
		return keyInput(code, mods), true
	}

	switch k := e.Key(); {
	case k == tcell.KeyRune:
		r := e.Rune()
		code, ok := key.CodeFromRune(r)
		if !ok {
			return Input{Signal: signal.Generic{Code: uint32(r), Name: string(r)}, Mods: mods}, true
		}
		if unicode.IsUpper(r) {
			mods |= key.ModShift
		}
		return keyInput(code, mods), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		code, _ := key.CodeFromRune(rune('a' + (k - tcell.KeyCtrlA)))
		return keyInput(code, mods|key.ModCtrl), true
	case k == tcell.KeyCtrlSpace:
		return keyInput(key.CodeSpace, mods|key.ModCtrl), true
	}
	return Input{}, false
}

func keyInput(code key.Code, mods key.Modifier) Input {
	return Input{
		Signal: signal.Key{Code: code, Dir: key.DirDown},
		Mods:   mods,
	}
}

func (c *Converter) convertMouse(e *tcell.EventMouse) []Input {
	mods := convertMod(e.Modifiers())
	x, y := e.Position()
	btn := e.Buttons()

	var out []Input
	if !c.seen || x != c.x || y != c.y {
		out = append(out, Input{
			Signal: signal.Cursor{X: int32(x), Y: int32(y), Mode: signal.CursorAbsolute},
			Mods:   mods,
		})
		c.x, c.y, c.seen = x, y, true
	}

	for _, b := range mouseButtons {
		was, is := c.buttons&b.mask != 0, btn&b.mask != 0
		switch {
		case is && !was:
			out = append(out, Input{Signal: signal.Key{Code: b.code, Dir: key.DirDown}, Mods: mods})
		case was && !is:
			out = append(out, Input{Signal: signal.Key{Code: b.code, Dir: key.DirUp}, Mods: mods})
		}
	}
	c.buttons = btn & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	var s signal.Scroll
	if btn&tcell.WheelUp != 0 {
		s.DY++
	}
	if btn&tcell.WheelDown != 0 {
		s.DY--
	}
	if btn&tcell.WheelRight != 0 {
		s.DX++
	}
	if btn&tcell.WheelLeft != 0 {
		s.DX--
	}
	if s != (signal.Scroll{}) {
		out = append(out, Input{Signal: s, Mods: mods})
	}
	return out
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

package key

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Code is a hardware key code. Values follow the Linux evdev numbering so
// that codes read from /dev/input and uinput can be used without translation.
type Code uint16

// CodeNone matches any key when used in a template.
const CodeNone Code = 0

// Key codes (linux/input-event-codes.h).
const (
	CodeEscape     Code = 1
	Code1          Code = 2
	Code2          Code = 3
	Code3          Code = 4
	Code4          Code = 5
	Code5          Code = 6
	Code6          Code = 7
	Code7          Code = 8
	Code8          Code = 9
	Code9          Code = 10
	Code0          Code = 11
	CodeMinus      Code = 12
	CodeEqual      Code = 13
	CodeBackspace  Code = 14
	CodeTab        Code = 15
	CodeQ          Code = 16
	CodeW          Code = 17
	CodeE          Code = 18
	CodeR          Code = 19
	CodeT          Code = 20
	CodeY          Code = 21
	CodeU          Code = 22
	CodeI          Code = 23
	CodeO          Code = 24
	CodeP          Code = 25
	CodeLeftBrace  Code = 26
	CodeRightBrace Code = 27
	CodeEnter      Code = 28
	CodeLeftCtrl   Code = 29
	CodeA          Code = 30
	CodeS          Code = 31
	CodeD          Code = 32
	CodeF          Code = 33
	CodeG          Code = 34
	CodeH          Code = 35
	CodeJ          Code = 36
	CodeK          Code = 37
	CodeL          Code = 38
	CodeSemicolon  Code = 39
	CodeApostrophe Code = 40
	CodeGrave      Code = 41
	CodeLeftShift  Code = 42
	CodeBackslash  Code = 43
	CodeZ          Code = 44
	CodeX          Code = 45
	CodeC          Code = 46
	CodeV          Code = 47
	CodeB          Code = 48
	CodeN          Code = 49
	CodeM          Code = 50
	CodeComma      Code = 51
	CodeDot        Code = 52
	CodeSlash      Code = 53
	CodeRightShift Code = 54
	CodeKPAsterisk Code = 55
	CodeLeftAlt    Code = 56
	CodeSpace      Code = 57
	CodeCapsLock   Code = 58
	CodeF1         Code = 59
	CodeF2         Code = 60
	CodeF3         Code = 61
	CodeF4         Code = 62
	CodeF5         Code = 63
	CodeF6         Code = 64
	CodeF7         Code = 65
	CodeF8         Code = 66
	CodeF9         Code = 67
	CodeF10        Code = 68
	CodeNumLock    Code = 69
	CodeScrollLock Code = 70
	CodeF11        Code = 87
	CodeF12        Code = 88
	CodeRightCtrl  Code = 97
	CodeRightAlt   Code = 100
	CodeHome       Code = 102
	CodeUp         Code = 103
	CodePageUp     Code = 104
	CodeLeft       Code = 105
	CodeRight      Code = 106
	CodeEnd        Code = 107
	CodeDown       Code = 108
	CodePageDown   Code = 109
	CodeInsert     Code = 110
	CodeDelete     Code = 111
	CodePause      Code = 119
	CodeLeftMeta   Code = 125
	CodeRightMeta  Code = 126
)

// codeNames holds the canonical display name for each known code.
var codeNames = map[Code]string{
	CodeEscape:     "Esc",
	Code1:          "1",
	Code2:          "2",
	Code3:          "3",
	Code4:          "4",
	Code5:          "5",
	Code6:          "6",
	Code7:          "7",
	Code8:          "8",
	Code9:          "9",
	Code0:          "0",
	CodeMinus:      "-",
	CodeEqual:      "=",
	CodeBackspace:  "BS",
	CodeTab:        "Tab",
	CodeQ:          "q",
	CodeW:          "w",
	CodeE:          "e",
	CodeR:          "r",
	CodeT:          "t",
	CodeY:          "y",
	CodeU:          "u",
	CodeI:          "i",
	CodeO:          "o",
	CodeP:          "p",
	CodeLeftBrace:  "[",
	CodeRightBrace: "]",
	CodeEnter:      "Enter",
	CodeLeftCtrl:   "LeftCtrl",
	CodeA:          "a",
	CodeS:          "s",
	CodeD:          "d",
	CodeF:          "f",
	CodeG:          "g",
	CodeH:          "h",
	CodeJ:          "j",
	CodeK:          "k",
	CodeL:          "l",
	CodeSemicolon:  ";",
	CodeApostrophe: "'",
	CodeGrave:      "`",
	CodeLeftShift:  "LeftShift",
	CodeBackslash:  "\\",
	CodeZ:          "z",
	CodeX:          "x",
	CodeC:          "c",
	CodeV:          "v",
	CodeB:          "b",
	CodeN:          "n",
	CodeM:          "m",
	CodeComma:      ",",
	CodeDot:        ".",
	CodeSlash:      "/",
	CodeRightShift: "RightShift",
	CodeKPAsterisk: "KP*",
	CodeLeftAlt:    "LeftAlt",
	CodeSpace:      "Space",
	CodeCapsLock:   "CapsLock",
	CodeF1:         "F1",
	CodeF2:         "F2",
	CodeF3:         "F3",
	CodeF4:         "F4",
	CodeF5:         "F5",
	CodeF6:         "F6",
	CodeF7:         "F7",
	CodeF8:         "F8",
	CodeF9:         "F9",
	CodeF10:        "F10",
	CodeNumLock:    "NumLock",
	CodeScrollLock: "ScrollLock",
	CodeF11:        "F11",
	CodeF12:        "F12",
	CodeRightCtrl:  "RightCtrl",
	CodeRightAlt:   "RightAlt",
	CodeHome:       "Home",
	CodeUp:         "Up",
	CodePageUp:     "PgUp",
	CodeLeft:       "Left",
	CodeRight:      "Right",
	CodeEnd:        "End",
	CodeDown:       "Down",
	CodePageDown:   "PgDn",
	CodeInsert:     "Ins",
	CodeDelete:     "Del",
	CodePause:      "Pause",
	CodeLeftMeta:   "LeftMeta",
	CodeRightMeta:  "RightMeta",
}

// String returns a human-readable name for the code.
func (c Code) String() string {
	if c == CodeNone {
		return "Any"
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// IsWildcard returns true if the code matches any key.
func (c Code) IsWildcard() bool {
	return c == CodeNone
}

// codeNameMap maps key names (lowercase) to codes.
var codeNameMap = map[string]Code{
	"any":        CodeNone,
	"escape":     CodeEscape,
	"esc":        CodeEscape,
	"enter":      CodeEnter,
	"return":     CodeEnter,
	"cr":         CodeEnter,
	"tab":        CodeTab,
	"backspace":  CodeBackspace,
	"bs":         CodeBackspace,
	"delete":     CodeDelete,
	"del":        CodeDelete,
	"insert":     CodeInsert,
	"ins":        CodeInsert,
	"home":       CodeHome,
	"end":        CodeEnd,
	"pageup":     CodePageUp,
	"pgup":       CodePageUp,
	"pagedown":   CodePageDown,
	"pgdn":       CodePageDown,
	"up":         CodeUp,
	"down":       CodeDown,
	"left":       CodeLeft,
	"right":      CodeRight,
	"f1":         CodeF1,
	"f2":         CodeF2,
	"f3":         CodeF3,
	"f4":         CodeF4,
	"f5":         CodeF5,
	"f6":         CodeF6,
	"f7":         CodeF7,
	"f8":         CodeF8,
	"f9":         CodeF9,
	"f10":        CodeF10,
	"f11":        CodeF11,
	"f12":        CodeF12,
	"space":      CodeSpace,
	"pause":      CodePause,
	"scrolllock": CodeScrollLock,
	"numlock":    CodeNumLock,
	"capslock":   CodeCapsLock,
	"leftctrl":   CodeLeftCtrl,
	"rightctrl":  CodeRightCtrl,
	"leftshift":  CodeLeftShift,
	"rightshift": CodeRightShift,
	"leftalt":    CodeLeftAlt,
	"rightalt":   CodeRightAlt,
	"leftmeta":   CodeLeftMeta,
	"rightmeta":  CodeRightMeta,
	"lt":         CodeComma,
	"gt":         CodeDot,
	"bslash":     CodeBackslash,
}

// runeCodes maps printable characters to the key that produces them on a
// US layout. Shifted characters map to their base key.
var runeCodes = map[rune]Code{
	'1': Code1, '!': Code1,
	'2': Code2, '@': Code2,
	'3': Code3, '#': Code3,
	'4': Code4, '$': Code4,
	'5': Code5, '%': Code5,
	'6': Code6, '^': Code6,
	'7': Code7, '&': Code7,
	'8': Code8, '*': Code8,
	'9': Code9, '(': Code9,
	'0': Code0, ')': Code0,
	'-': CodeMinus, '_': CodeMinus,
	'=': CodeEqual, '+': CodeEqual,
	'[': CodeLeftBrace, '{': CodeLeftBrace,
	']': CodeRightBrace, '}': CodeRightBrace,
	';': CodeSemicolon, ':': CodeSemicolon,
	'\'': CodeApostrophe, '"': CodeApostrophe,
	'`': CodeGrave, '~': CodeGrave,
	'\\': CodeBackslash, '|': CodeBackslash,
	',': CodeComma, '<': CodeComma,
	'.': CodeDot, '>': CodeDot,
	'/': CodeSlash, '?': CodeSlash,
	' ': CodeSpace,
	'a': CodeA, 'b': CodeB, 'c': CodeC, 'd': CodeD, 'e': CodeE,
	'f': CodeF, 'g': CodeG, 'h': CodeH, 'i': CodeI, 'j': CodeJ,
	'k': CodeK, 'l': CodeL, 'm': CodeM, 'n': CodeN, 'o': CodeO,
	'p': CodeP, 'q': CodeQ, 'r': CodeR, 's': CodeS, 't': CodeT,
	'u': CodeU, 'v': CodeV, 'w': CodeW, 'x': CodeX, 'y': CodeY,
	'z': CodeZ,
}

// CodeFromName returns the Code for a given name (case-insensitive).
// Single characters resolve through CodeFromRune and "code:N" selects a raw
// numeric code. Returns CodeNone and false if the name is not recognized.
func CodeFromName(name string) (Code, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := codeNameMap[name]; ok {
		return c, true
	}
	if raw, ok := strings.CutPrefix(name, "code:"); ok {
		n, err := strconv.ParseUint(raw, 0, 16)
		if err != nil {
			return CodeNone, false
		}
		return Code(n), true
	}
	runes := []rune(name)
	if len(runes) == 1 {
		return CodeFromRune(runes[0])
	}
	return CodeNone, false
}

// CodeFromRune returns the key producing r on a US layout.
// Upper-case letters map to their letter key.
func CodeFromRune(r rune) (Code, bool) {
	c, ok := runeCodes[unicode.ToLower(r)]
	return c, ok
}

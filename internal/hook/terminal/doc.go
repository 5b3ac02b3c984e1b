// Package terminal is a signal source backed by a tcell screen.
//
// It stands in for an OS input hook on machines where one is not
// available: terminal key and mouse events are converted into signals and
// fed to a dispatcher, and every decision is reported back so it can be
// shown live.
//
// Terminals only report key presses, so every key signal carries
// key.DirDown and hotkeys waiting for a release never complete here. Mouse
// buttons are tracked across events and produce both edges using the evdev
// button codes (BTN_LEFT, BTN_RIGHT, BTN_MIDDLE). Wheel events become
// single-notch scroll signals; pointer motion becomes an absolute cursor
// signal in cell coordinates.
package terminal

// Package signal defines the hardware input signals consumed by the stage
// matching engine.
//
// A Signal is one intercepted event. The set of kinds is closed:
//
//   - Key: a key press or release (code, scan code, direction)
//   - Cursor: a pointer move, relative or absolute
//   - Scroll: a wheel delta on up to three axes
//   - Echo: a HID echo report identified by an id
//   - Generic: any other event the hook could not classify
//
// Concrete signals are small value types. Once stored in an interface they
// are immutable, so keeping a Signal as a template is already a copy.
//
// Zero field values act as wildcards when a signal is used as a template:
// key code 0, scan code 0, DirBoth, CursorAny, a zero scroll axis, and
// AnyEcho (-1) for echo ids.
package signal

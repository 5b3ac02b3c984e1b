// Package scenario replays recorded signal streams against hotkey
// definitions.
//
// A scenario file is YAML. It names a set of hotkeys, each compiled into a
// stage.Container, and a list of signals. The Runner registers the
// containers with a real dispatcher, dispatches every signal in order and
// records, per signal, whether the originating event would have been
// blocked, which hotkeys fired and how far every hotkey has progressed.
//
// Example:
//
//	name: save chord
//	hotkeys:
//	  - name: save
//	    keys: "Ctrl+X:down s:up"
//	    blocking: true
//	signals:
//	  - key: "Ctrl+X:down"
//	  - key: "s:up"
//	  - disable: key
//
// Reports are written as plain text (stable enough for golden files) or
// YAML.
package scenario

// Package stage recognizes multi-step hotkey definitions in a stream of
// hardware signals.
//
// # Stages
//
// A Stage is a single-step matcher bound to one signal kind. It holds a
// template signal whose zero fields are wildcards, a modifier filter, a
// blocking flag, a tolerance for analog kinds and a transient activation
// flag. The comparison strategy is chosen once, when the stage is built:
//
//	s, err := stage.New(signal.Key{Code: key.CodeX, Dir: key.DirDown},
//	    stage.WithMods(stage.ExactMods(key.ModCtrl)),
//	    stage.WithBlocking(true),
//	)
//
// IsMe is a pure predicate. Activate mutates the activation flag: an
// inactive stage runs the full predicate, an active stage only checks that
// the signal is still of its kind, so autorepeat keeps it active.
//
// # Containers
//
// A Container is an ordered list of stages forming one trigger condition.
// Activation propagates left to right, at most one stage per signal, and
// unrelated signals in between leave progress untouched. Once the last
// stage activates the container is Complete and stays so until Reset.
//
//	c := stage.NewContainer("save", ctrlX, sUp)
//	if completed, block := c.Activate(sig, mods); completed {
//	    c.Reset()
//	}
//
// A container with no stages matches every signal; a container with one
// stage delegates directly to it.
//
// # Blocking
//
// Only a stage's transition from inactive to active contributes to the
// blocking result. Refreshes of stages that are already active (autorepeat)
// never ask for the event to be swallowed again.
//
// # Invariants
//
// Building with the stagedebug tag turns internal invariant checks into
// panics. Without it the checks compile to nothing.
package stage

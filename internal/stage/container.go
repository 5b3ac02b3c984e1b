package stage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// Container is an ordered list of stages forming one trigger condition.
//
// A container is mutated by Activate and Reset only. It is not safe for
// concurrent use; the dispatcher serializes access.
type Container struct {
	id       uuid.UUID
	name     string
	stages   []Stage
	progress Progress
}

// NewContainer creates a container over copies of the given stages.
func NewContainer(name string, stages ...Stage) *Container {
	c := &Container{
		id:     uuid.New(),
		name:   name,
		stages: slices.Clone(stages),
	}
	for i := range c.stages {
		c.stages[i].Reset()
	}
	c.progress = Progress{Len: len(c.stages)}
	return c
}

// ID returns the container's identity.
func (c *Container) ID() uuid.UUID {
	return c.id
}

// Name returns the container's display name.
func (c *Container) Name() string {
	return c.name
}

// Len returns the number of stages.
func (c *Container) Len() int {
	return len(c.stages)
}

// Stages returns a copy of the stages in order.
func (c *Container) Stages() []Stage {
	return slices.Clone(c.stages)
}

// Progress returns the current progress.
func (c *Container) Progress() Progress {
	return c.progress
}

// Validate returns ErrMalformedStage if any stage has no matcher.
func (c *Container) Validate() error {
	for i := range c.stages {
		if !c.stages[i].Valid() {
			return fmt.Errorf("%w: %q stage %d", ErrMalformedStage, c.name, i)
		}
	}
	return nil
}

// Kinds returns the signal kinds the container must be routed for, in kind
// order. Empty containers and containers with a match-all stage need every
// kind.
func (c *Container) Kinds() []signal.Kind {
	if len(c.stages) == 0 {
		return signal.Kinds()
	}
	var kinds []signal.Kind
	for i := range c.stages {
		st := &c.stages[i]
		if !st.Valid() {
			continue
		}
		if st.MatchesAnyKind() {
			return signal.Kinds()
		}
		if !slices.Contains(kinds, st.Kind()) {
			kinds = append(kinds, st.Kind())
		}
	}
	slices.Sort(kinds)
	return kinds
}

// WillActivate reports whether sig would complete the container, without
// changing any stage.
func (c *Container) WillActivate(sig signal.Signal, mods key.Modifier) (complete, blocking bool) {
	switch n := len(c.stages); n {
	case 0:
		return true, false
	case 1:
		return c.stages[0].IsMe(sig, mods)
	default:
		if c.progress.State == Complete {
			return false, false
		}
		if !c.stages[n-2].activated && !c.stages[n-1].activated {
			return false, false
		}
		return c.stages[n-1].IsMe(sig, mods)
	}
}

// Activate advances the container with one signal. It reports whether the
// last stage activated as a result, and whether the signal should be
// blocked. A completed container ignores signals until Reset.
func (c *Container) Activate(sig signal.Signal, mods key.Modifier) (completed, blocking bool) {
	n := len(c.stages)
	if n == 0 {
		return true, false
	}
	if c.progress.State == Complete {
		return false, false
	}
	before := c.progress

	if n == 1 {
		completed, blocking = c.stages[0].Activate(sig, mods)
		c.measure()
		c.check(before)
		return completed, blocking
	}

	if done, block := c.WillActivate(sig, mods); done {
		c.stages[n-1].activated = true
		c.measure()
		c.check(before)
		return true, block
	}

	blocking = c.advance(sig, mods)
	assertf(!c.stages[n-1].activated, "%q: last stage activated outside the terminal step", c.name)
	c.measure()
	c.check(before)
	return c.progress.State == Complete, blocking
}

// advance walks stages from the last down to the first. Only stages that
// become active in this call contribute to blocking.
func (c *Container) advance(sig signal.Signal, mods key.Modifier) bool {
	var blocking bool
	for i := len(c.stages) - 1; i >= 1; i-- {
		st := &c.stages[i]
		switch {
		case st.activated:
			st.Activate(sig, mods)
		case c.stages[i-1].activated:
			if ok, b := st.Activate(sig, mods); ok && b {
				blocking = true
			}
		}
	}
	if ok, b := c.stages[0].Activate(sig, mods); ok && b {
		blocking = true
	}
	return blocking
}

// measure recomputes progress from the activation flags.
func (c *Container) measure() {
	n := len(c.stages)
	reached := 0
	for i := n - 1; i >= 0; i-- {
		if c.stages[i].activated {
			reached = i + 1
			break
		}
	}
	p := Progress{Reached: reached, Len: n}
	switch {
	case reached == 0:
		p.State = Idle
	case reached == n:
		p.State = Complete
	default:
		p.State = Progressing
	}
	c.progress = p
}

// check verifies that one signal moved progress by at most one stage.
func (c *Container) check(before Progress) {
	assertf(c.progress.Reached <= before.Reached+1,
		"%q: progress jumped from %d to %d", c.name, before.Reached, c.progress.Reached)
}

// Reset clears every stage's progress flag and returns the container to
// Idle.
func (c *Container) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
	c.progress = Progress{Len: len(c.stages)}
}

// String returns the name and stages, e.g. `save[key x:down mods=Ctrl, key s:up]`.
func (c *Container) String() string {
	parts := make([]string, len(c.stages))
	for i := range c.stages {
		parts[i] = c.stages[i].String()
	}
	return c.name + "[" + strings.Join(parts, ", ") + "]"
}

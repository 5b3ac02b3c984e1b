package dispatcher

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// Container is what the dispatcher drives. *stage.Container implements it.
type Container interface {
	ID() uuid.UUID
	Name() string
	Kinds() []signal.Kind
	Validate() error
	Activate(sig signal.Signal, mods key.Modifier) (completed, blocking bool)
	Reset()
}

// route is the dispatch set of one kind.
type route struct {
	disabled   bool
	containers []Container
}

// table is an immutable snapshot of all routes. Writers copy it, modify
// the copy and publish it.
type table struct {
	routes map[signal.Kind]*route
}

func newTable(disabled []signal.Kind) *table {
	t := &table{routes: make(map[signal.Kind]*route, len(signal.Kinds()))}
	for _, k := range signal.Kinds() {
		t.routes[k] = &route{disabled: slices.Contains(disabled, k)}
	}
	return t
}

// clone returns a copy whose routes can be modified without affecting t.
func (t *table) clone() *table {
	c := &table{routes: make(map[signal.Kind]*route, len(t.routes))}
	for k, r := range t.routes {
		c.routes[k] = &route{
			disabled:   r.disabled,
			containers: slices.Clone(r.containers),
		}
	}
	return c
}

// add appends c to the kind's route unless it is already there.
func (t *table) add(kind signal.Kind, c Container) bool {
	r := t.routes[kind]
	if indexOf(r.containers, c.ID()) >= 0 {
		return false
	}
	r.containers = append(r.containers, c)
	return true
}

// remove deletes c from the kind's route.
func (t *table) remove(kind signal.Kind, id uuid.UUID) bool {
	r := t.routes[kind]
	i := indexOf(r.containers, id)
	if i < 0 {
		return false
	}
	r.containers = slices.Delete(r.containers, i, i+1)
	return true
}

// contains returns true if any route holds the container.
func (t *table) contains(id uuid.UUID) bool {
	for _, r := range t.routes {
		if indexOf(r.containers, id) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(cs []Container, id uuid.UUID) int {
	return slices.IndexFunc(cs, func(c Container) bool {
		return c.ID() == id
	})
}

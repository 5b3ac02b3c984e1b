package trigger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
)

// Notification reports that a container completed.
type Notification struct {
	// ContainerID identifies the completed container.
	ContainerID uuid.UUID

	// Name is the container's display name.
	Name string

	// Signal is the signal that completed the container.
	Signal signal.Signal

	// Mods is the modifier state at completion.
	Mods key.Modifier

	// At is when the dispatcher observed the completion.
	At time.Time
}

// String returns a short description for logs.
func (n Notification) String() string {
	sig := "<nil>"
	if n.Signal != nil {
		sig = n.Signal.String()
	}
	return fmt.Sprintf("%s (%s) on %s", n.Name, n.ContainerID, sig)
}

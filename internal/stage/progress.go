package stage

import "fmt"

// State is the coarse progress of a container.
type State uint8

const (
	// Idle means no stage is activated.
	Idle State = iota
	// Progressing means some but not all stages are activated.
	Progressing
	// Complete means the last stage activated. Terminal until Reset.
	Complete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Progressing:
		return "progressing"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Progress describes how far a container has advanced.
type Progress struct {
	State State

	// Reached is one past the deepest activated stage.
	Reached int

	// Len is the number of stages.
	Len int
}

// String returns "idle", "complete" or "reached/len".
func (p Progress) String() string {
	if p.State == Progressing {
		return fmt.Sprintf("%d/%d", p.Reached, p.Len)
	}
	return p.State.String()
}

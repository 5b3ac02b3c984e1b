package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNilContainer indicates a nil container was registered.
	ErrNilContainer = errors.New("dispatcher: nil container")

	// ErrInvalidKind indicates a kind outside the known signal kinds.
	ErrInvalidKind = errors.New("dispatcher: invalid signal kind")
)

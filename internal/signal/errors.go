package signal

import "errors"

// ErrUnknownKind is returned when a kind name cannot be resolved.
var ErrUnknownKind = errors.New("signal: unknown kind")

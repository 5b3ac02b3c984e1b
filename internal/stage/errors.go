package stage

import "errors"

// Stage errors.
var (
	// ErrMalformedStage indicates a stage without a usable matcher, or a
	// template whose kind cannot be resolved.
	ErrMalformedStage = errors.New("stage: malformed stage")
)

package scenario

import "errors"

// ErrInvalidScenario is returned for scenario files that cannot be compiled.
var ErrInvalidScenario = errors.New("invalid scenario")

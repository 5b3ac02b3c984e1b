package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a value that fails validation or decoding.
var ErrInvalidConfig = errors.New("invalid config")

// ParseError reports malformed TOML. Line and Column are zero when the
// decoder gave no position.
type ParseError struct {
	Path         string
	Line, Column int
	Message      string
	Err          error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

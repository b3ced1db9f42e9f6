package kwargs

import (
	"errors"
	"fmt"
)

// ErrImproperlyConfigured marks server-authored configuration mistakes:
// a reserved kwarg used with the wrong connection variant, a data field on a
// GET route, or a cyclic provider graph. These surface as server faults and
// are never shown to clients as their own mistake.
var ErrImproperlyConfigured = errors.New("improperly configured")

// ValidationError is a client-caused resolution failure carrying the name of
// the offending parameter, so the invocation layer can point clients at the
// exact input to fix.
type ValidationError struct {
	// Param is the offending parameter name or alias.
	Param string
	// Msg is the client-facing description.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newMissingParam(alias string) *ValidationError {
	return &ValidationError{
		Param: alias,
		Msg:   fmt.Sprintf("missing required parameter %q", alias),
	}
}

package provide

import "errors"

// Registration errors. All of them are server-authored configuration
// mistakes and should fail application startup.
var (
	ErrEmptyProviderName = errors.New("provider name must not be empty")
	ErrNilProvider       = errors.New("nil provider")
	ErrDuplicateProvider = errors.New("duplicate provider")
	ErrCyclicProvider    = errors.New("cyclic provider dependency")
)

package connection

import "errors"

// Common connection errors
var (
	// ErrUserNotSet indicates user was read before an auth middleware
	// populated it. A server-side configuration mistake, never a client error.
	ErrUserNotSet = errors.New("user is not populated in the connection scope: install an auth middleware that calls SetUser")
	// ErrAuthNotSet indicates auth was read before an auth middleware
	// populated it.
	ErrAuthNotSet = errors.New("auth is not populated in the connection scope: install an auth middleware that calls SetAuth")

	ErrInvalidJSON          = errors.New("invalid JSON body")
	ErrInvalidForm          = errors.New("invalid form body")
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrBodyTooLarge         = errors.New("request body too large")
)

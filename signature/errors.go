package signature

import (
	"errors"
	"fmt"
)

// Common signature model errors
var (
	ErrNotStruct      = errors.New("signature model requires a struct type")
	ErrEmptyFieldName = errors.New("field name must not be empty")
	// ErrValidation wraps failures to coerce resolved kwargs into the
	// declared types. Treated as a client error by the invocation layer.
	ErrValidation = errors.New("keyword arguments failed validation")
)

// DuplicateFieldError reports two fields declared under the same name.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q in signature", e.Name)
}

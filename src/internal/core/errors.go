// FILE: src/internal/core/errors.go
package core

import "fmt"

// SerializationError indicates a payload value that cannot be represented
// as JSON. It is a programmer error and is surfaced directly to the caller
// rather than swallowed.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("value for key %q is not JSON-serializable: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("payload is not JSON-serializable: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

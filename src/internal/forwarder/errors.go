// FILE: src/internal/forwarder/errors.go
package forwarder

import "fmt"

// ConfigError indicates an invalid or missing forwarder setting at
// construction time. A misconfigured forwarder must not silently drop
// events, so this fails fast and nothing is ever delivered.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("forwarder config: %s %s", e.Field, e.Reason)
}

// DeliveryError reports a failed forward: either a transport failure
// (Err set, no status) or a non-2xx response from the collector
// (StatusCode and Body set).
type DeliveryError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("event delivery failed: %v", e.Err)
	}
	return fmt.Sprintf("collector returned status %d: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

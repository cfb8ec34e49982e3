// Package apierr classifies model provider failures.
//
// Provider adapters translate transport and HTTP failures into these sentinels
// at the adapter boundary, so callers can decide what to report and what to
// retry without knowing which wire format was used.
// Wrap with fmt.Errorf("%s: %w", msg, sentinel); check with errors.Is.
package apierr

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider interaction failures.
var (
	// ErrUnreachable indicates the connection was refused (server not running).
	ErrUnreachable = errors.New("service unreachable")

	// ErrConnectionLost indicates the connection was reset or closed mid-request.
	ErrConnectionLost = errors.New("connection lost")

	// ErrTimeout indicates a request exceeded its time budget.
	ErrTimeout = errors.New("request timeout")

	// ErrProvider indicates the provider answered with a structured error body.
	ErrProvider = errors.New("provider error")
)

// ProviderError carries the provider's own error message.
// Error returns that message verbatim; errors.Is(err, ErrProvider) matches.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

var _ error = (*ProviderError)(nil)

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned HTTP %d", e.Provider, e.StatusCode)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return ErrProvider
}

// IsTransient reports whether err may go away on a fresh attempt.
// Provider errors and empty results are deterministic and are not transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrConnectionLost) ||
		errors.Is(err, ErrTimeout)
}

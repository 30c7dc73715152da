// Package errors provides error classification for the client SDK.
// The gateway's retry loop and the shard executor both key off the category
// to decide whether a failed operation may be repeated.
package errors

import "fmt"

// Category determines how errors should be handled by retry logic.
type Category int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: connection refused, timeouts where no HTTP response arrived.
	Recoverable Category = iota

	// Irrecoverable errors fail immediately without retry. Any received
	// HTTP error response falls here: blindly repeating a write the server
	// may have already applied is not idempotency-safe.
	Irrecoverable
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// GatewayError wraps a failed resource operation with classification
// metadata. StatusCode is zero for network-level failures.
type GatewayError struct {
	Category   Category
	StatusCode int
	Message    string // server-supplied {"error": ...} text, if any
	Underlying error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *GatewayError) Unwrap() error { return e.Underlying }

// UserMessage returns the server-supplied message when one was present,
// otherwise a generic fallback suitable for a notification banner.
func (e *GatewayError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode > 0 {
		return "the server could not complete the request"
	}
	return "could not reach the server"
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if ge, ok := err.(*GatewayError); ok {
		return ge.Category == Irrecoverable
	}
	return false
}

// IsNetwork reports whether err is a network-level gateway failure.
func IsNetwork(err error) bool {
	ge, ok := err.(*GatewayError)
	return ok && ge.StatusCode == 0
}

// IsHTTP reports whether err carries a received HTTP error response.
func IsHTTP(err error) bool {
	ge, ok := err.(*GatewayError)
	return ok && ge.StatusCode > 0
}

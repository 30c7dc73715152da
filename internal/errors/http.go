package errors

import "fmt"

// NewHTTPError creates a classified error for a received error response.
// Responses are never retried by the gateway regardless of status: the
// mutations this SDK issues are not idempotent, so a 5xx that the server may
// have partially applied cannot be blindly repeated.
func NewHTTPError(statusCode int, serverMessage, operation string) *GatewayError {
	return &GatewayError{
		Category:   Irrecoverable,
		StatusCode: statusCode,
		Message:    serverMessage,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// NewNetworkError creates a classified error for a request that produced no
// HTTP response. Always recoverable: the failure may be transient.
func NewNetworkError(operation string, err error) *GatewayError {
	return &GatewayError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

// NewValidationError creates a classified error for client-side validation
// failures caught before any request is built.
func NewValidationError(msg string) *GatewayError {
	return &GatewayError{
		Category:   Irrecoverable,
		Message:    msg,
		Underlying: fmt.Errorf("validation: %s", msg),
	}
}

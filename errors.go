package client

import (
	stderrors "errors"

	clierrors "github.com/carejourney/client-go/internal/errors"
	"github.com/carejourney/client-go/internal/shardqueue"
)

// GatewayError carries the classification of a failed resource operation.
type GatewayError = clierrors.GatewayError

// ErrBackPressure is returned when the settlement queue for a key is full.
var ErrBackPressure = shardqueue.ErrQueueFull

// IsBackPressure reports whether err is a back-pressure rejection.
func IsBackPressure(err error) bool { return stderrors.Is(err, ErrBackPressure) }

// IsNetworkError reports whether err is a network-level gateway failure
// (no HTTP response received).
func IsNetworkError(err error) bool { return clierrors.IsNetwork(err) }

// IsHTTPError reports whether err carries a received HTTP error response.
func IsHTTPError(err error) bool { return clierrors.IsHTTP(err) }

package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/carejourney/client-go/internal/shardqueue"
)

// Option configures a Client during construction in New.
//
// Options are applied before the gateway and executor are wired, so
// transport-related options (like debug logging) end up beneath the bearer
// credential injection. Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// This bounds one HTTP attempt end to end (connection, TLS handshake,
// redirects, reading the response); the gateway's network retry sits on top
// of it. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true.
//
// Do not enable this option in production environments: dumps include
// headers and full bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithNotifier replaces the default log-based notifier that surfaces
// mutation failures to the user.
func WithNotifier(n Notifier) Option {
	return func(c *Client) error {
		if n == nil {
			return fmt.Errorf("notifier must not be nil")
		}
		c.notifier = n
		return nil
	}
}

// WithShardConfig overrides the settlement executor configuration. Without
// it the executor is built from SQ_* environment variables and defaults.
func WithShardConfig(cfg ShardConfig) Option {
	return func(c *Client) error {
		c.exec = shardqueue.NewShardExecutor(cfg)
		return nil
	}
}

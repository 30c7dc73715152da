// Package gateway performs one HTTP call per logical resource operation,
// with auth header injection and network-only retry. It never touches the
// query cache.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/carejourney/client-go/internal/errors"
)

const (
	// DefaultTimeout bounds one HTTP attempt end to end.
	DefaultTimeout = 5 * time.Second

	// maxRetries is the bound on automatic retries for network-level
	// failures. Received error responses are never retried: the mutations
	// behind them are not idempotency-safe to blindly repeat.
	maxRetries = 2

	retryBaseInterval = 200 * time.Millisecond
)

// CredentialSource supplies the bearer credential attached to requests. An
// empty token (or a nil source) sends the request unauthenticated; whether
// that is valid is the endpoint's decision.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticCredential is a CredentialSource for a fixed token.
type StaticCredential string

// Token implements CredentialSource.
func (s StaticCredential) Token(context.Context) (string, error) { return string(s), nil }

// Gateway issues authenticated requests against the backend.
type Gateway struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
}

// New constructs a Gateway. httpClient may be nil, in which case a client
// with DefaultTimeout is used.
func New(baseURL string, creds CredentialSource, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Gateway{baseURL: baseURL, http: httpClient, creds: creds}
}

// Do performs one logical resource operation: marshal body (if any), inject
// the bearer credential, execute with network-only retry, and decode a 2xx
// JSON response into out (nil out discards the body).
//
// Failures surface as *errors.GatewayError: network kind (no response
// received, already retried) or HTTP kind (non-2xx status, never retried,
// carrying the server's {"error": ...} message when present).
func (g *Gateway) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := fmt.Sprintf("%s %s", method, path)

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s: %w", op, err)
		}
		payload = b
	}

	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	token := ""
	if g.creds != nil {
		t, err := g.creds.Token(ctx)
		if err != nil {
			return fmt.Errorf("gateway: credential for %s: %w", op, err)
		}
		token = t
	}

	attempt := 0
	operation := func() error {
		attempt++
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := g.http.Do(req)
		if err != nil {
			// No response received; transient until proven otherwise.
			log.Debug().Err(err).Str("op", op).Int("attempt", attempt).Msg("gateway: network failure")
			return errors.NewNetworkError(op, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(errors.NewHTTPError(resp.StatusCode, serverMessage(resp.Body), op))
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("gateway: decode %s: %w", op, err))
		}
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = retryBaseInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, maxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return err
	}
	return nil
}

// serverMessage extracts the backend's {"error": string} body, if any.
func serverMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 8192))
	if err != nil {
		return ""
	}
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return ""
}

package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps each HTTP request/response for troubleshooting API
// communication. It logs full bodies, including bearer tokens and patient
// data, so it must only be enabled in development environments.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := dt.base
	if next == nil {
		next = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := next.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks whether HTTP debug logging should be enabled
// from the environment: CAREJOURNEY_DEBUG=true for targeted SDK debugging,
// or the general DEBUG=true.
func debugLoggingRequested() bool {
	return os.Getenv("CAREJOURNEY_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

package cloudagents

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport logs full request and response dumps. Enabled through
// WithDebugLogging or CLOUDAGENTS_DEBUG=true.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	redacted := req.Clone(req.Context())
	if redacted.Header.Get("Authorization") != "" {
		redacted.Header.Set("Authorization", "[REDACTED]")
	}
	// DumpRequestOut consumes the body; dump a copy and leave req intact
	if req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			redacted.Body = body
		}
	} else {
		redacted.Body = nil
	}
	if reqDump, err := httputil.DumpRequestOut(redacted, redacted.Body != nil); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks CLOUDAGENTS_DEBUG and DEBUG
func debugLoggingRequested() bool {
	return os.Getenv("CLOUDAGENTS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

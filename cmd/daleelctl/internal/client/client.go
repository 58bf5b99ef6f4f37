package client

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single API request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns the HTTP client used for API calls. Bearer tokens
// are added per request by the SDK transport, not here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

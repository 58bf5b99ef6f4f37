package sdk

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrSessionExpired is returned when the server rejects a request that
// carried a bearer token. By the time a caller sees it the persisted token
// has already been cleared and the session-expired hooks have run.
var ErrSessionExpired = errors.New("session expired; please log in again")

// AuthenticationError is raised when the server rejects a login or
// registration attempt. Error returns the server's message verbatim so
// that it can be shown to the user as-is.
type AuthenticationError struct {
	Op         string // "login" or "register"
	StatusCode int    // zero when the request never reached the server
	Message    string
	Err        error
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a 2xx response whose body could not be
// decoded into the expected shape.
type MalformedResponseError struct {
	Endpoint string
	Field    string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed response from %s: field %q: %v", e.Endpoint, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response other than a session expiry.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.Path, e.Message, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// errorDetail extracts a human readable message from an error body.
// Handles {"detail": "..."}, validation arrays {"detail": [{"msg": "..."}]},
// and {"message": "..."} / {"error": "..."} envelopes.
func errorDetail(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			if s := m.String(); s != "" {
				msgs = append(msgs, s)
			}
		}
		return strings.Join(msgs, "; ")
	}
	for _, key := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

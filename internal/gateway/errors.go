package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vyapar/pkg/httpx"
)

// ErrSessionExpired is returned after a 401; by the time the caller sees
// it the session store has already been cleared.
var ErrSessionExpired = errors.New("gateway: session expired, please login again")

// APIError is a non-2xx response from the backend. Message carries the
// server's `detail` payload when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed (HTTP %d)", e.Status)
}

// NetworkError is a transport-level failure: the request never produced an
// HTTP response (offline, DNS, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ErrorFromResponse builds the APIError for a non-2xx response. Exposed for
// callers that bypass Do, such as the unauthenticated login request.
func ErrorFromResponse(resp *httpx.Response) *APIError {
	return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, resp.Raw)}
}

// errorMessage extracts a human-readable message from the backend's error
// payload. The API answers either {"detail": "text"} or
// {"detail": [{"msg": "text"}, ...]}; anything else falls back to a
// status-based message.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var text string
		if json.Unmarshal(envelope.Detail, &text) == nil && text != "" {
			return text
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(envelope.Detail, &items) == nil && len(items) > 0 {
			var msgs []string
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, ", ")
			}
		}
	}

	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("request failed: %s (HTTP %d)", text, status)
	}
	return fmt.Sprintf("request failed (HTTP %d)", status)
}

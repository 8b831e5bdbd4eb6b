package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GenericErrorMessage is shown when the service's error payload carries no
// usable message field.
const GenericErrorMessage = "An unexpected error occurred"

// HTTPError represents a non-2xx HTTP response from the service. Message is
// the service's human-readable "message" field when present, otherwise a
// generic fallback; it is suitable for direct display.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// newHTTPError builds an HTTPError from an error response, extracting the
// service's message field. The body is capped; a service bug that streams an
// enormous error must not blow up the client.
func newHTTPError(resp *http.Response) *HTTPError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && !strings.HasPrefix(msg, "{") {
		return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with
// the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Notice extracts a single display message from any client error: the
// service's message for HTTP errors, the generic fallback for everything
// else (timeouts, refused connections, malformed responses).
func Notice(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return GenericErrorMessage
}

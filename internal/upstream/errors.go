package upstream

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error is a non-2xx response from the backend, carrying the display message
// of its error envelope. Views surface Message directly.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var respErr *Error
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusUnauthorized
}

// MessageFor extracts the backend's display message from err, falling back to
// the given text for transport-level failures that carry no envelope.
func MessageFor(err error, fallback string) string {
	var respErr *Error
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	return fallback
}

// envelope matches the backend's error body. Some endpoints use "error",
// others "message".
type envelope struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e envelope) text() string {
	if e.Err != "" {
		return e.Err
	}
	return e.Message
}

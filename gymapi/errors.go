package gymapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/gymbuddy-web/internal/errors"
)

// APIError is a non-2xx response from the GymBuddy API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the body's "message", "msg" or "error" field, whichever is set first
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gymapi: %s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("gymapi: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func newAPIError(method, path string, statusCode int, body []byte) *APIError {
	var envelope struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	// Non-JSON bodies leave the message empty.
	_ = json.Unmarshal(body, &envelope)

	msg := envelope.Message
	if msg == "" {
		msg = envelope.Msg
	}
	if msg == "" {
		msg = envelope.Error
	}
	return &APIError{Method: method, Path: path, StatusCode: statusCode, Message: msg}
}

// StatusCode returns the HTTP status of an APIError in err's chain, or 0 for transport failures.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the server-supplied message of an APIError in err's chain.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

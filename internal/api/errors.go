package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents an error returned by the projects backend.
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error.
func IsUnauthorized(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsNotFound returns true if the error is a 404 Not Found error.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// parseError turns a non-2xx response body into an *Error. The backend
// reports errors as {"error": "..."}; anything else falls back to the raw
// body.
func parseError(statusCode int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return &Error{StatusCode: statusCode, Message: payload.Error}
		}
		if payload.Message != "" {
			return &Error{StatusCode: statusCode, Message: payload.Message}
		}
	}
	return &Error{StatusCode: statusCode, Message: string(body)}
}

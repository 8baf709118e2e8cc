// ABOUTME: Error types returned by the note server client
// ABOUTME: Error carries HTTP status and server message; ErrUnauthorized is matched via errors.Is

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched by any Error with status 401.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the server.
type Error struct {
	Status    int
	Procedure string
	Message   string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Procedure, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Procedure, e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message extracts the server-provided message from err, or "".
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

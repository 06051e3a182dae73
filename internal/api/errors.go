package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any *Error for a 404 response
var ErrNotFound = errors.New("not found")

// Error is returned for non-2xx API responses
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is reports 404 responses as ErrNotFound
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors surfaced by the client. APIError unwraps to one of
// these, so callers can branch with errors.Is without inspecting
// status codes.
var (
	// ErrSessionExpired means the refresh token was rejected and the
	// local session was cleared. The user has to log in again.
	ErrSessionExpired = errors.New("session expired")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

// APIError is a non-2xx response decoded from the backend's error body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Unwrap maps the HTTP status onto the matching sentinel error.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.Status >= http.StatusInternalServerError:
		return ErrServer
	}
	return nil
}

package storage

import (
	"errors"
	"fmt"
)

// Common storage errors.
var (
	// ErrNotFound is returned when a network is not found.
	ErrNotFound = errors.New("network not found")

	// ErrUnauthorized is returned when the store rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is an unexpected HTTP response from a network store.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCommentBody is returned before any network call when an
	// update body is empty or whitespace-only.
	ErrEmptyCommentBody = errors.New("comment body cannot be empty")
	// ErrCommentTooShort is returned before any network call when an
	// update body trims to fewer than 3 characters.
	ErrCommentTooShort = errors.New("comment must be at least 3 characters long")
	// ErrCommentNotFound is returned when the remote API has no comment
	// with the requested id.
	ErrCommentNotFound = errors.New("comment not found")
)

// TransportError reports a network or HTTP failure talking to the remote
// API. StatusCode is zero when the request never produced a response.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: http status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

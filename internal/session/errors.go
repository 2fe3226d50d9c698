package session

import "errors"

// Sentinel errors for session operations, checked with errors.Is.
var (
	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptySessionID indicates a blank session identifier.
	ErrEmptySessionID = errors.New("empty session id")
)

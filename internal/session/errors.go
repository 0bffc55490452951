package session

import (
	"errors"
	"fmt"
)

// Submission preconditions. Ready joins every one that fails.
var (
	ErrMissingFile     = errors.New("no document staged")
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrRequestInFlight = errors.New("a query is already in flight")
)

var (
	// ErrAborted marks a query that ended without the backend call returning.
	ErrAborted = errors.New("query aborted")
	// ErrNothingToCopy is returned by Copy when no answer is shown.
	ErrNothingToCopy = errors.New("no answer to copy")

	errClipboardUnsupported = errors.New("no clipboard utility available")
)

// ClipboardError wraps a clipboard write that the system refused.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard unavailable: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// Answer-slot text for failed queries.
const (
	MsgTransportFailure   = "Sorry, there was an error processing your query. Please try again."
	MsgBackendUnreachable = "Sorry, there was an error processing your query. Please make sure the backend server is running."
)

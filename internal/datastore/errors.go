package datastore

import (
	"errors"
	"fmt"
)

var (
	// ErrHistoryLoad marks a history file that exists but cannot be read or parsed.
	// Callers must stop instead of running against unknown state.
	ErrHistoryLoad = errors.New("failed to load title history")
	// ErrHistorySave marks a failed write of the history file.
	ErrHistorySave = errors.New("failed to save title history")
	// ErrLedgerClosed is returned by RunLedger methods after Close.
	ErrLedgerClosed = errors.New("run ledger is closed")
)

// Error represents a general error in the datastore package.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an existing error with a message.
func WrapError(err error, message string) error {
	return &Error{Message: message, Err: err}
}

// historyError attaches the fatal sentinel kind to a concrete cause so both
// match with errors.Is.
type historyError struct {
	kind  error
	path  string
	cause error
}

func (e *historyError) Error() string {
	return fmt.Sprintf("%v (%s): %v", e.kind, e.path, e.cause)
}

func (e *historyError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

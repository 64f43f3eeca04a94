package noyastate

import (
	"errors"
	"fmt"
)

// Sentinel errors for the noyastate package.
var (
	// ErrNoPages is returned by CreateInitialState for a document without pages.
	ErrNoPages = errors.New("noyastate: document has no pages")

	// ErrUnknownAction is returned when a tuple's tag names no action.
	ErrUnknownAction = errors.New("noyastate: unknown action")

	// ErrMalformedAction is returned when a tuple's payload does not fit its action.
	ErrMalformedAction = errors.New("noyastate: malformed action")
)

// ActionDecodeError reports which action of a script failed to decode.
type ActionDecodeError struct {
	// Index is the position of the action in its script, or -1 for a single action.
	Index int
	// Tag is the action's tag, empty when the tuple had none.
	Tag string
	Err error
}

func (e *ActionDecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("noyastate: decode action %q: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("noyastate: decode action %d (%q): %v", e.Index, e.Tag, e.Err)
}

func (e *ActionDecodeError) Unwrap() error { return e.Err }

// Package sentinel holds the facts stores report about persisted state.
// Services translate them into coded domain errors; handlers never see them.
package sentinel

import "errors"

var (
	// ErrNotFound: no quote, session or event with that id.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a quote was written by someone else since it was read
	// (version mismatch), or an insert hit an existing id.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyUsed: a sign session has already left PENDING.
	ErrAlreadyUsed = errors.New("already used")
)

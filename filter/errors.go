package filter

import (
	"errors"
	"strconv"
)

var (
	ErrUnknownSeverity   = errors.New("unknown severity")
	ErrEmptyPath         = errors.New("empty namespace path")
	ErrInvalidIdentifier = errors.New("invalid identifier in namespace path")
	ErrMissingCrate      = errors.New("missing crate name")
)

// DirectiveError identifies the directive, and the token within it, that
// made a filter specification invalid.
type DirectiveError struct {
	Directive string
	Token     string
	Err       error
}

func (e *DirectiveError) Error() string {
	return "invalid filter directive " + strconv.Quote(e.Directive) + ": " + e.Err.Error() + " " + strconv.Quote(e.Token)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

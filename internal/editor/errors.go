package editor

import "errors"

var (
	// ErrTokenNotFound is returned when the target token is not part of the
	// supplied token list.
	ErrTokenNotFound = errors.New("target token not in token list")

	// ErrInvalidProposal is returned when a hook rewrites a proposed token
	// text to a different length.
	ErrInvalidProposal = errors.New("rewritten proposal changes the token length")
)

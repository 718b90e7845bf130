package session

import (
	"errors"

	"github.com/muurk/maskedit/internal/editor"
)

var (
	// ErrReentrant is returned when a command is executed while another
	// pipeline pass is still running, typically from inside a hook.
	ErrReentrant = errors.New("edit session already in progress")

	// ErrTokenNotFound is returned for a token sequence number outside the
	// token list.
	ErrTokenNotFound = editor.ErrTokenNotFound

	// ErrUnknownCommand is returned for a command kind the engine does not
	// implement.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidProposal is returned when a hook rewrites a proposal to a
	// different length.
	ErrInvalidProposal = editor.ErrInvalidProposal
)

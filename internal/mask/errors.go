package mask

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a mask parse failure
type ErrorType int

const (
	// ErrTypeTrailingEscape indicates the mask ends with an unescaped backslash
	ErrTypeTrailingEscape ErrorType = iota
	// ErrTypeLengthMismatch indicates the display text does not fit the mask
	ErrTypeLengthMismatch
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTrailingEscape:
		return "Trailing Escape"
	case ErrTypeLengthMismatch:
		return "Length Mismatch"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ParseError describes why a mask could not be parsed
type ParseError struct {
	Type     ErrorType // Category of error
	Message  string    // Human-readable error message
	Mask     string    // The mask being parsed
	Position int       // Rune offset in the mask (trailing escape only)
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (mask %q)", e.Type, e.Message, e.Mask)
}

func newTrailingEscape(mask string, pos int) *ParseError {
	return &ParseError{
		Type:     ErrTypeTrailingEscape,
		Message:  fmt.Sprintf("unescaped '\\' at end of mask (offset %d)", pos),
		Mask:     mask,
		Position: pos,
	}
}

func newLengthMismatch(mask string, want, got int) *ParseError {
	return &ParseError{
		Type:     ErrTypeLengthMismatch,
		Message:  fmt.Sprintf("display text has %d characters, mask needs %d", got, want),
		Mask:     mask,
		Position: -1,
	}
}

// IsParseError checks if an error is (or wraps) a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsTrailingEscape checks if an error is a trailing-escape ParseError
func IsTrailingEscape(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Type == ErrTypeTrailingEscape
}

// IsLengthMismatch checks if an error is a length-mismatch ParseError
func IsLengthMismatch(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Type == ErrTypeLengthMismatch
}

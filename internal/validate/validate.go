// Package validate range-checks token text and corrects values that fall
// outside [MinValue, MaxValue).
//
// Text that does not parse as a number (custom-value literals, letter
// tokens) is never range-checked and passes through unchanged.
package validate

import (
	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/mask"
	"go.uber.org/zap"
)

// Defaults are the fix modes used when a token carries no override.
type Defaults struct {
	TooSmall mask.FixMode
	TooLarge mask.FixMode
}

// modeFor resolves the effective fix mode from a token override.
func modeFor(override *mask.FixMode, def mask.FixMode) mask.FixMode {
	if override != nil {
		return *override
	}
	return def
}

// ValidateTokenText checks candidate against the range of t and returns the
// text to commit. current is the token text before the edit, or nil when
// there is none; KeepExistingValue can only revert when it is set.
//
// wasFixed is true whenever the returned text differs from candidate.
func ValidateTokenText(t *mask.Token, current *string, candidate string, defSmall, defLarge mask.FixMode) (string, bool) {
	return validate(t, current, candidate, defSmall, defLarge, 0)
}

// WithPrompt is ValidateTokenText for display text that may hold prompt
// characters in unfilled positions.
func WithPrompt(t *mask.Token, current *string, candidate string, d Defaults, prompt rune) (string, bool) {
	return validate(t, current, candidate, d.TooSmall, d.TooLarge, prompt)
}

func validate(t *mask.Token, current *string, candidate string, defSmall, defLarge mask.FixMode, prompt rune) (string, bool) {
	v, ok := t.ParseValue(candidate, prompt)
	if !ok {
		return candidate, false
	}

	final := candidate
	switch {
	case v.LessThan(t.MinValue):
		switch modeFor(t.ValueTooSmallFixMode, defSmall) {
		case mask.TakeClosestValidValue:
			final = t.FormatValue(t.MinValue)
		default:
			if current != nil {
				final = *current
			}
		}
	case v.GreaterThanOrEqual(t.MaxValue):
		switch modeFor(t.ValueTooLargeFixMode, defLarge) {
		case mask.TakeClosestValidValue:
			final = t.FormatValue(t.MaxRepresentable())
		default:
			if current != nil {
				final = *current
			}
		}
	}

	fixed := final != candidate
	if fixed {
		logging.Debug("Token value fixed",
			zap.Int("seq", t.SeqNo),
			zap.String("candidate", candidate),
			zap.String("final", final),
			zap.String("min", t.MinValue.String()),
			zap.String("max", t.MaxValue.String()))
	}
	return final, fixed
}

// InRange reports whether text parses to a value inside the token range.
// Non-numeric text is always in range.
func InRange(t *mask.Token, text string, prompt rune) bool {
	v, ok := t.ParseValue(text, prompt)
	if !ok {
		return true
	}
	return t.InRange(v)
}

package session

import (
	"slices"

	"github.com/muurk/maskedit/internal/mask"
)

// DefaultPromptChar marks unfilled editable positions.
const DefaultPromptChar = '_'

// Config holds the engine behaviour flags.
type Config struct {
	SplitChars        []rune // nil means mask.DefaultSplitChars
	PromptChar        rune
	WrapAround        bool
	WrapIfNoCarryRoom bool
	CarryOverEnabled  bool
	ByDigitDefault    bool
	TooSmall          mask.FixMode
	TooLarge          mask.FixMode
	NumberFormat      *mask.NumberFormat
}

// DefaultConfig returns the configuration used when a host sets nothing.
func DefaultConfig() Config {
	return Config{
		SplitChars:       slices.Clone(mask.DefaultSplitChars),
		PromptChar:       DefaultPromptChar,
		WrapAround:       true,
		CarryOverEnabled: true,
		TooSmall:         mask.KeepExistingValue,
		TooLarge:         mask.KeepExistingValue,
	}
}

func (c Config) parser() *mask.Parser {
	return &mask.Parser{SplitChars: c.SplitChars, NumberFormat: c.NumberFormat}
}

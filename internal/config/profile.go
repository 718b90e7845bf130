package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/session"
	"github.com/shopspring/decimal"
)

// singleRune converts a one-character setting. Empty yields 0.
func singleRune(field, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// SessionConfig builds the engine configuration of the profile.
func (p *Profile) SessionConfig() (session.Config, error) {
	cfg := session.DefaultConfig()

	if p.SplitChars != nil {
		cfg.SplitChars = append([]rune{}, []rune(*p.SplitChars)...)
	}
	prompt, err := singleRune("prompt_char", p.PromptChar)
	if err != nil {
		return cfg, err
	}
	if prompt != 0 {
		cfg.PromptChar = prompt
	}
	if p.WrapAround != nil {
		cfg.WrapAround = *p.WrapAround
	}
	if p.CarryOver != nil {
		cfg.CarryOverEnabled = *p.CarryOver
	}
	cfg.WrapIfNoCarryRoom = p.WrapIfNoCarryRoom
	cfg.ByDigitDefault = p.ByDigit

	if cfg.TooSmall, err = mask.ParseFixMode(p.TooSmall); err != nil {
		return cfg, fmt.Errorf("too_small: %w", err)
	}
	if cfg.TooLarge, err = mask.ParseFixMode(p.TooLarge); err != nil {
		return cfg, fmt.Errorf("too_large: %w", err)
	}

	if p.NumberFormat != nil {
		dec, err := singleRune("number_format.decimal", p.NumberFormat.Decimal)
		if err != nil {
			return cfg, err
		}
		group, err := singleRune("number_format.group", p.NumberFormat.Group)
		if err != nil {
			return cfg, err
		}
		cfg.NumberFormat = &mask.NumberFormat{Decimal: dec, Group: group}
	}
	return cfg, nil
}

// NewEngine creates an engine for the profile with every token
// customization applied.
func (p *Profile) NewEngine() (*session.Engine, error) {
	cfg, err := p.SessionConfig()
	if err != nil {
		return nil, err
	}
	eng, err := session.New(p.Mask, p.Text, cfg)
	if err != nil {
		return nil, err
	}
	for seq, spec := range p.Tokens {
		if spec == nil {
			continue
		}
		var applyErr error
		err := eng.Customize(seq, func(t *mask.Token) { applyErr = spec.Apply(t) })
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", seq, err)
		}
		if applyErr != nil {
			return nil, fmt.Errorf("token %d: %w", seq, applyErr)
		}
	}
	return eng, nil
}

func parseDecimal(field, s string, dst *decimal.Decimal) error {
	if s == "" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = v
	return nil
}

// Apply writes the customizations onto t.
func (s *TokenSpec) Apply(t *mask.Token) error {
	if err := parseDecimal("min", s.Min, &t.MinValue); err != nil {
		return err
	}
	if err := parseDecimal("max", s.Max, &t.MaxValue); err != nil {
		return err
	}
	if err := parseDecimal("small", s.Small, &t.SmallIncrement); err != nil {
		return err
	}
	if err := parseDecimal("big", s.Big, &t.BigIncrement); err != nil {
		return err
	}
	if s.CarryOver != nil {
		t.CarryOver = *s.CarryOver
	}
	t.CarryOverScope = s.CarryOverScope
	if s.ByDigit != nil {
		v := *s.ByDigit
		t.ByDigit = &v
	}

	pad, err := singleRune("pad_char", s.PadChar)
	if err != nil {
		return err
	}
	t.PadChar = pad
	if t.PadRule, err = mask.ParsePadRule(s.PadRule); err != nil {
		return err
	}
	t.ReverseUpDown = s.ReverseUpDown
	if s.CustomValues != nil {
		t.CustomValues = append([]string(nil), s.CustomValues...)
	}

	if s.TooSmall != "" {
		m, err := mask.ParseFixMode(s.TooSmall)
		if err != nil {
			return fmt.Errorf("too_small: %w", err)
		}
		t.ValueTooSmallFixMode = &m
	}
	if s.TooLarge != "" {
		m, err := mask.ParseFixMode(s.TooLarge)
		if err != nil {
			return fmt.Errorf("too_large: %w", err)
		}
		t.ValueTooLargeFixMode = &m
	}
	return nil
}

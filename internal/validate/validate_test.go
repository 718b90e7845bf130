package validate

import (
	"testing"

	"github.com/muurk/maskedit/internal/mask"
	"github.com/shopspring/decimal"
)

func token(t *testing.T, m, text string) *mask.Token {
	t.Helper()
	tokens, err := mask.Parse(m, text, nil, nil)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", m, err)
	}
	return tokens[0]
}

func strPtr(s string) *string { return &s }

func TestValidateTokenText(t *testing.T) {
	tests := []struct {
		name      string
		min, max  int64
		current   *string
		candidate string
		small     mask.FixMode
		large     mask.FixMode
		want      string
		wantFixed bool
	}{
		{"closest below max", 0, 60, nil, "99", mask.KeepExistingValue, mask.TakeClosestValidValue, "59", true},
		{"in range", 0, 60, nil, "42", mask.KeepExistingValue, mask.TakeClosestValidValue, "42", false},
		{"max is exclusive", 0, 60, nil, "60", mask.KeepExistingValue, mask.TakeClosestValidValue, "59", true},
		{"keep reverts", 0, 60, strPtr("30"), "75", mask.KeepExistingValue, mask.KeepExistingValue, "30", true},
		{"keep without current", 0, 60, nil, "75", mask.KeepExistingValue, mask.KeepExistingValue, "75", false},
		{"closest min", 10, 60, nil, "05", mask.TakeClosestValidValue, mask.KeepExistingValue, "10", true},
		{"keep below min", 10, 60, strPtr("12"), "05", mask.KeepExistingValue, mask.KeepExistingValue, "12", true},
		{"non-numeric passes", 0, 60, nil, "AM", mask.TakeClosestValidValue, mask.TakeClosestValidValue, "AM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := token(t, "00", "00")
			tok.MinValue = decimal.NewFromInt(tt.min)
			tok.MaxValue = decimal.NewFromInt(tt.max)
			got, fixed := ValidateTokenText(tok, tt.current, tt.candidate, tt.small, tt.large)
			if got != tt.want || fixed != tt.wantFixed {
				t.Errorf("ValidateTokenText(%q) = (%q, %v), want (%q, %v)",
					tt.candidate, got, fixed, tt.want, tt.wantFixed)
			}
		})
	}
}

func TestTokenOverrideWins(t *testing.T) {
	tok := token(t, "00", "00")
	tok.MaxValue = decimal.NewFromInt(24)
	closest := mask.TakeClosestValidValue
	tok.ValueTooLargeFixMode = &closest

	got, fixed := ValidateTokenText(tok, strPtr("10"), "30", mask.KeepExistingValue, mask.KeepExistingValue)
	if got != "23" || !fixed {
		t.Errorf("ValidateTokenText() = (%q, %v), want (\"23\", true)", got, fixed)
	}
}

func TestDecimalMaxRepresentable(t *testing.T) {
	p := &mask.Parser{NumberFormat: &mask.DefaultNumberFormat}
	tokens, err := p.Parse("00.00", "00.00", nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tok := tokens[0]
	tok.MaxValue = decimal.NewFromInt(50)

	got, fixed := ValidateTokenText(tok, nil, "75.00", mask.KeepExistingValue, mask.TakeClosestValidValue)
	if got != "49.99" || !fixed {
		t.Errorf("ValidateTokenText() = (%q, %v), want (\"49.99\", true)", got, fixed)
	}
}

func TestWithPrompt(t *testing.T) {
	tok := token(t, "00", "00")
	tok.MaxValue = decimal.NewFromInt(24)
	d := Defaults{TooSmall: mask.KeepExistingValue, TooLarge: mask.TakeClosestValidValue}

	if got, _ := WithPrompt(tok, nil, "_7", d, '_'); got != "_7" {
		t.Errorf("WithPrompt(_7) = %q, want unchanged", got)
	}
	if got, fixed := WithPrompt(tok, nil, "9_", d, '_'); got != "9_" || fixed {
		t.Errorf("WithPrompt(9_) = (%q, %v), want unchanged", got, fixed)
	}
	if got, fixed := WithPrompt(tok, nil, "99", d, '_'); got != "23" || !fixed {
		t.Errorf("WithPrompt(99) = (%q, %v), want (\"23\", true)", got, fixed)
	}
	if !InRange(tok, "__", '_') {
		t.Error("blank text should count as in range")
	}
}

package mask

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustParse(t *testing.T, p *Parser, m, text string) []*Token {
	t.Helper()
	tokens, err := p.Parse(m, text, nil)
	if err != nil {
		t.Fatalf("Parse(%q, %q) error = %v", m, text, err)
	}
	return tokens
}

func TestFormatValue(t *testing.T) {
	decimalParser := &Parser{NumberFormat: &DefaultNumberFormat}

	tests := []struct {
		name  string
		p     *Parser
		mask  string
		text  string
		value string
		want  string
	}{
		{"zero pad", NewParser(), "00", "00", "5", "05"},
		{"nine translated", NewParser(), "99", "  ", "7", "07"},
		{"full width", NewParser(), "00", "00", "59", "59"},
		{"overflow is prefixed", NewParser(), "00", "00", "123", "123"},
		{"negative replaces leading zero", NewParser(), "###", "   ", "-5", "-05"},
		{"decimal token", decimalParser, "000.00", "000.00", "12.5", "012.50"},
		{"decimal rounds", decimalParser, "0.0", "0.0", "1.26", "1.3"},
		{"group separator kept", decimalParser, "0,000", "0,000", "42", "0,042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := mustParse(t, tt.p, tt.mask, tt.text)[0]
			got := tok.FormatValue(decimal.RequireFromString(tt.value))
			if got != tt.want {
				t.Errorf("FormatValue(%s) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tok := mustParse(t, NewParser(), "000", "000")[0]
	tok.PadChar = '*'

	tests := []struct {
		text   string
		prompt rune
		want   string
		ok     bool
	}{
		{"042", 0, "42", true},
		{" 42", 0, "42", true},
		{"_42", '_', "42", true},
		{"**7", '_', "7", true},
		{"-12", 0, "-12", true},
		{"1 2", 0, "", false},
		{"   ", 0, "", false},
		{"abc", 0, "", false},
		{"", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := tok.ParseValue(tt.text, tt.prompt)
			if ok != tt.ok {
				t.Fatalf("ParseValue(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseValue(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		mask    string
		text    string
		wantMax string
		wantBig string
	}{
		{"0", "0", "10", "2"},
		{"00", "00", "100", "5"},
		{"0000", "0000", "10000", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.mask, func(t *testing.T) {
			tok := mustParse(t, NewParser(), tt.mask, tt.text)[0]
			if !tok.MaxValue.Equal(decimal.RequireFromString(tt.wantMax)) {
				t.Errorf("MaxValue = %s, want %s", tok.MaxValue, tt.wantMax)
			}
			if !tok.BigIncrement.Equal(decimal.RequireFromString(tt.wantBig)) {
				t.Errorf("BigIncrement = %s, want %s", tok.BigIncrement, tt.wantBig)
			}
			if !tok.MinValue.IsZero() || !tok.SmallIncrement.Equal(decimal.NewFromInt(1)) {
				t.Errorf("unexpected Min/Small defaults: %s/%s", tok.MinValue, tok.SmallIncrement)
			}
			if !tok.CarryOver {
				t.Error("CarryOver should default to true")
			}
		})
	}
}

func TestMaxRepresentable(t *testing.T) {
	tok := mustParse(t, NewParser(), "00", "00")[0]
	tok.MaxValue = decimal.NewFromInt(60)
	if got := tok.MaxRepresentable(); !got.Equal(decimal.NewFromInt(59)) {
		t.Errorf("MaxRepresentable() = %s, want 59", got)
	}

	dec := mustParse(t, &Parser{NumberFormat: &DefaultNumberFormat}, "00.00", "00.00")[0]
	if got := dec.MaxRepresentable(); !got.Equal(decimal.RequireFromString("99.99")) {
		t.Errorf("MaxRepresentable() = %s, want 99.99", got)
	}
}

func TestCanEdit(t *testing.T) {
	tokens := mustParse(t, NewParser(), `00\ \A\M`, "12 AM")
	if !tokens[0].CanEdit() {
		t.Error("editable token should be editable")
	}
	if tokens[1].CanEdit() {
		t.Error("literal token without custom values should not be editable")
	}
	tokens[1].CustomValues = []string{" AM", " PM"}
	if !tokens[1].CanEdit() {
		t.Error("literal token with custom values should be editable")
	}
	if tokens[1].AcceptsTyping() {
		t.Error("literal token should never accept typing")
	}
}

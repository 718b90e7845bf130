package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/shopspring/decimal"
)

func parse(t *testing.T, m, text string) []*mask.Token {
	t.Helper()
	tokens, err := mask.Parse(m, text, nil, nil)
	if err != nil {
		t.Fatalf("Parse(%q, %q) error = %v", m, text, err)
	}
	return tokens
}

// clock returns "00:00" tokens with hour and minute ranges set.
func clock(t *testing.T, text string) []*mask.Token {
	t.Helper()
	tokens := parse(t, "00:00", text)
	tokens[0].MaxValue = decimal.NewFromInt(24)
	tokens[2].MaxValue = decimal.NewFromInt(60)
	return tokens
}

func carryOpts() Options {
	return Options{WrapAround: true, CarryOverEnabled: true}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestKeyUpDownNumeric(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		seq     int
		amount  int64
		opts    Options
		want    string
		changed bool
	}{
		{"carry into hour", "09:59", 2, 1, carryOpts(), "10:00", true},
		{"borrow from hour", "10:00", 2, -1, carryOpts(), "09:59", true},
		{"plain increment", "12:30", 2, 1, carryOpts(), "12:31", true},
		{"partial clamp stops carry", "12:57", 2, 5, carryOpts(), "12:59", true},
		{"partial clamp at min", "12:03", 2, -5, carryOpts(), "12:00", true},
		{"no wrap clamps to max", "09:59", 2, 1, Options{CarryOverEnabled: true}, "09:59", false},
		{"carry disabled wraps alone", "09:59", 2, 1, Options{WrapAround: true}, "09:00", true},
		{"hour wraps without predecessor", "23:15", 0, 1, carryOpts(), "00:15", true},
		{"carry exhausted is rejected", "23:59", 2, 1, carryOpts(), "23:59", false},
		{"carry exhausted wraps when allowed", "23:59", 2, 1,
			Options{WrapAround: true, CarryOverEnabled: true, WrapIfNoCarryRoom: true}, "00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := clock(t, tt.text)
			res, err := KeyUpDown(tokens, tokens[tt.seq], tt.text, dec(tt.amount), false, tt.opts)
			if err != nil {
				t.Fatalf("KeyUpDown() error = %v", err)
			}
			if res.Text != tt.want || res.Changed != tt.changed {
				t.Errorf("KeyUpDown(%q, %+d) = (%q, changed=%v), want (%q, changed=%v)",
					tt.text, tt.amount, res.Text, res.Changed, tt.want, tt.changed)
			}
			if res.Cancelled {
				t.Error("KeyUpDown() should not report cancelled")
			}
		})
	}
}

func TestKeyUpDownCarryLog(t *testing.T) {
	tokens := clock(t, "09:59")
	res, err := KeyUpDown(tokens, tokens[2], "09:59", dec(1), false, carryOpts())
	if err != nil {
		t.Fatalf("KeyUpDown() error = %v", err)
	}
	want := []Change{{Seq: 2, Old: "59", New: "00"}, {Seq: 0, Old: "09", New: "10"}}
	if diff := cmp.Diff(want, res.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
	if res.Mode != ModeNumeric {
		t.Errorf("Mode = %v, want numeric", res.Mode)
	}
	// inputs are not modified
	if tokens[2].Text != "59" || tokens[0].Text != "09" {
		t.Error("KeyUpDown modified the supplied tokens")
	}
}

func TestKeyUpDownCarryScope(t *testing.T) {
	setup := func() []*mask.Token {
		tokens := parse(t, "00:00:00", "01:59:59")
		tokens[0].MaxValue = dec(24)
		tokens[2].MaxValue = dec(60)
		tokens[4].MaxValue = dec(60)
		tokens[4].CarryOverScope = 1
		return tokens
	}

	tokens := setup()
	res, err := KeyUpDown(tokens, tokens[4], "01:59:59", dec(1), false, carryOpts())
	if err != nil {
		t.Fatalf("KeyUpDown() error = %v", err)
	}
	if res.Changed {
		t.Errorf("scope 1 should reject the edit, got %q", res.Text)
	}

	opts := carryOpts()
	opts.WrapIfNoCarryRoom = true
	tokens = setup()
	res, err = KeyUpDown(tokens, tokens[4], "01:59:59", dec(1), false, opts)
	if err != nil {
		t.Fatalf("KeyUpDown() error = %v", err)
	}
	if res.Text != "01:00:00" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "01:00:00")
	}

	tokens = setup()
	tokens[4].CarryOverScope = 0
	res, _ = KeyUpDown(tokens, tokens[4], "01:59:59", dec(1), false, carryOpts())
	if res.Text != "02:00:00" {
		t.Errorf("unlimited scope: KeyUpDown() = %q, want %q", res.Text, "02:00:00")
	}
}

func TestKeyUpDownStopsAtNonCarryingToken(t *testing.T) {
	tokens := clock(t, "09:59")
	tokens[2].CarryOver = false
	res, _ := KeyUpDown(tokens, tokens[2], "09:59", dec(1), false, carryOpts())
	if res.Text != "09:00" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "09:00")
	}
}

func TestKeyUpDownZeroAmount(t *testing.T) {
	cases := []struct {
		name  string
		setup func() ([]*mask.Token, int, string)
	}{
		{"numeric", func() ([]*mask.Token, int, string) { return clock(t, "09:59"), 2, "09:59" }},
		{"custom", func() ([]*mask.Token, int, string) {
			tokens := parse(t, "LLL", "Jan")
			tokens[0].CustomValues = []string{"Jan", "Feb"}
			return tokens, 0, "Jan"
		}},
		{"by digit", func() ([]*mask.Token, int, string) {
			tokens := parse(t, "LL", "ab")
			return tokens, 0, "ab"
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tokens, seq, text := c.setup()
			for _, symbolic := range []bool{false, true} {
				res, err := KeyUpDown(tokens, tokens[seq], text, decimal.Zero, symbolic, carryOpts())
				if err != nil {
					t.Fatalf("KeyUpDown() error = %v", err)
				}
				if res.Changed || res.Cancelled || res.Text != text {
					t.Errorf("zero amount should be a no-op, got %+v", res)
				}
			}
		})
	}
}

func TestKeyUpDownRoundTrip(t *testing.T) {
	for _, amount := range []int64{1, 5} {
		tokens := clock(t, "12:30")
		up, err := KeyUpDown(tokens, tokens[2], "12:30", dec(amount), true, carryOpts())
		if err != nil || !up.Changed {
			t.Fatalf("increment by %d failed: %+v, %v", amount, up, err)
		}

		tokens = clock(t, up.Text)
		down, err := KeyUpDown(tokens, tokens[2], up.Text, dec(-amount), true, carryOpts())
		if err != nil {
			t.Fatalf("KeyUpDown() error = %v", err)
		}
		if down.Text != "12:30" {
			t.Errorf("symbolic %d round trip = %q via %q, want %q", amount, down.Text, up.Text, "12:30")
		}
	}
}

func TestKeyUpDownSymbolicUsesIncrements(t *testing.T) {
	tokens := clock(t, "12:30")
	tokens[2].SmallIncrement = dec(15)
	tokens[2].BigIncrement = dec(30)

	res, _ := KeyUpDown(tokens, tokens[2], "12:30", dec(1), true, carryOpts())
	if res.Text != "12:45" {
		t.Errorf("small step = %q, want %q", res.Text, "12:45")
	}
	res, _ = KeyUpDown(tokens, tokens[2], "12:30", dec(-10), true, carryOpts())
	if res.Text != "12:00" {
		t.Errorf("big step = %q, want %q", res.Text, "12:00")
	}
}

func TestKeyUpDownReverse(t *testing.T) {
	tokens := clock(t, "09:30")
	tokens[2].ReverseUpDown = true
	res, _ := KeyUpDown(tokens, tokens[2], "09:30", dec(1), false, carryOpts())
	if res.Text != "09:29" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "09:29")
	}
}

func TestKeyUpDownCustomValues(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar"}
	tests := []struct {
		name    string
		text    string
		dir     int64
		wrap    bool
		want    string
		changed bool
	}{
		{"next", "jan", 1, false, "Feb", true},
		{"previous", "Feb", -1, false, "Jan", true},
		{"wraps forward", "MAR", 1, true, "Jan", true},
		{"wraps backward", "Jan", -1, true, "Mar", true},
		{"refuses past end", "Mar", 1, false, "Mar", false},
		{"unknown goes to first", "xyz", 1, false, "Jan", true},
		{"unknown goes to last", "xyz", -1, false, "Mar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parse(t, "LLL", tt.text)
			tokens[0].CustomValues = months
			res, err := KeyUpDown(tokens, tokens[0], tt.text, dec(tt.dir), false, Options{WrapAround: tt.wrap})
			if err != nil {
				t.Fatalf("KeyUpDown() error = %v", err)
			}
			if res.Text != tt.want || res.Changed != tt.changed {
				t.Errorf("KeyUpDown(%q, %+d) = (%q, %v), want (%q, %v)",
					tt.text, tt.dir, res.Text, res.Changed, tt.want, tt.changed)
			}
			if res.Mode != ModeCustom {
				t.Errorf("Mode = %v, want custom", res.Mode)
			}
		})
	}
}

func TestKeyUpDownCustomValuesFit(t *testing.T) {
	tokens := parse(t, "0000", "***1")
	tokens[0].CustomValues = []string{"1", "22", "333"}
	tokens[0].PadRule = mask.PadLeft
	tokens[0].PadChar = '*'

	res, _ := KeyUpDown(tokens, tokens[0], "***1", dec(1), false, Options{})
	if res.Text != "**22" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "**22")
	}
}

func TestKeyUpDownLiteralCustomValues(t *testing.T) {
	m := `00:00 \A\M`
	tokens := parse(t, m, "09:30 AM")
	ampm := tokens[len(tokens)-1]
	ampm.CustomValues = []string{" AM", " PM"}

	res, err := KeyUpDown(tokens, ampm, "09:30 AM", dec(1), false, Options{Mask: m})
	if err != nil {
		t.Fatalf("KeyUpDown() error = %v", err)
	}
	if res.Text != "09:30 PM" {
		t.Errorf("Text = %q, want %q", res.Text, "09:30 PM")
	}
	if res.Mask != `00:00\ \P\M` {
		t.Errorf("Mask = %q, want %q", res.Mask, `00:00\ \P\M`)
	}
	if _, err := mask.Parse(res.Mask, res.Text, nil, nil); err != nil {
		t.Errorf("result does not re-parse: %v", err)
	}
}

func TestKeyUpDownByDigit(t *testing.T) {
	byDigit := true

	tokens := clock(t, "19:30")
	tokens[0].ByDigit = &byDigit
	res, _ := KeyUpDown(tokens, tokens[0], "19:30", dec(1), false, Options{Caret: 0})
	if res.Text != "09:30" {
		t.Errorf("out-of-range digits should be skipped: got %q, want %q", res.Text, "09:30")
	}
	if res.Mode != ModeByDigit {
		t.Errorf("Mode = %v, want by-digit", res.Mode)
	}

	tokens = clock(t, "12:30")
	res, _ = KeyUpDown(tokens, tokens[2], "12:30", dec(-1), false, Options{ByDigitDefault: true, Caret: 4})
	if res.Text != "12:39" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "12:39")
	}

	tokens = parse(t, ">LL", "AB")
	res, _ = KeyUpDown(tokens, tokens[0], "AB", dec(1), false, Options{Caret: 1})
	if res.Text != "AC" {
		t.Errorf("letter token: got %q, want %q", res.Text, "AC")
	}
	res, _ = KeyUpDown(tokens, tokens[0], "AB", dec(-1), false, Options{Caret: 0})
	if res.Text != "ZB" {
		t.Errorf("letter token wrap: got %q, want %q", res.Text, "ZB")
	}
}

func TestKeyUpDownByDigitSkipsUnparsableText(t *testing.T) {
	byDigit := true
	tokens := parse(t, "000", "105")
	tokens[0].ByDigit = &byDigit

	// '0' steps down to the prompt first; "1_5" is not a number
	res, _ := KeyUpDown(tokens, tokens[0], "105", dec(-1), false, Options{Caret: 1, PromptChar: '_'})
	if res.Text != "195" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "195")
	}

	// a trailing prompt still parses
	tokens = parse(t, "000", "10_")
	tokens[0].ByDigit = &byDigit
	res, _ = KeyUpDown(tokens, tokens[0], "10_", dec(1), false, Options{Caret: 1, PromptChar: '_'})
	if res.Text != "11_" {
		t.Errorf("KeyUpDown() = %q, want %q", res.Text, "11_")
	}
}

func TestKeyUpDownHooks(t *testing.T) {
	tokens := clock(t, "09:59")
	opts := carryOpts()
	opts.TokenChanging = func(c Change) (Change, bool) { return c, c.Seq != 0 }

	res, err := KeyUpDown(tokens, tokens[2], "09:59", dec(1), false, opts)
	if err != nil {
		t.Fatalf("KeyUpDown() error = %v", err)
	}
	if !res.Cancelled || res.Changed || res.Text != "09:59" {
		t.Errorf("vetoed carry should cancel the whole edit, got %+v", res)
	}

	opts.TokenChanging = func(c Change) (Change, bool) {
		c.New = "45"
		return c, true
	}
	tokens = clock(t, "09:30")
	res, err = KeyUpDown(tokens, tokens[2], "09:30", dec(1), false, opts)
	if err != nil {
		t.Fatalf("KeyUpDown() error = %v", err)
	}
	if res.Text != "09:45" {
		t.Errorf("rewritten proposal: got %q, want %q", res.Text, "09:45")
	}

	opts.TokenChanging = func(c Change) (Change, bool) {
		c.New = "123"
		return c, true
	}
	tokens = clock(t, "09:59")
	_, err = KeyUpDown(tokens, tokens[2], "09:59", dec(1), false, opts)
	if !errors.Is(err, ErrInvalidProposal) {
		t.Errorf("error = %v, want ErrInvalidProposal", err)
	}
}

func TestKeyUpDownForeignToken(t *testing.T) {
	tokens := clock(t, "09:59")
	other := clock(t, "09:59")
	_, err := KeyUpDown(tokens, other[2], "09:59", dec(1), false, carryOpts())
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("error = %v, want ErrTokenNotFound", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		value string
		n     int
		rule  mask.PadRule
		pad   rune
		want  string
	}{
		{"May", 5, mask.PadRight, 0, "May  "},
		{"May", 5, mask.PadLeft, '_', "__May"},
		{"September", 3, mask.PadDefault, 0, "Sep"},
		{"abc", 3, mask.PadLeft, 0, "abc"},
	}
	for _, tt := range tests {
		if got := Fit(tt.value, tt.n, tt.rule, tt.pad); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.value, tt.n, got, tt.want)
		}
	}
}

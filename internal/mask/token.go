package mask

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// CaseShift is the case transform applied to a single mask position.
// It is set by the '>', '<' and '|' shift markers.
type CaseShift int

const (
	// ShiftNone leaves typed characters untouched ('|' marker or no marker seen)
	ShiftNone CaseShift = iota
	// ShiftUpper converts typed characters to upper case ('>' marker)
	ShiftUpper
	// ShiftLower converts typed characters to lower case ('<' marker)
	ShiftLower
)

// String returns the marker-style name of the shift
func (s CaseShift) String() string {
	switch s {
	case ShiftUpper:
		return "upper"
	case ShiftLower:
		return "lower"
	default:
		return "none"
	}
}

// Apply transforms r according to the shift.
func (s CaseShift) Apply(r rune) rune {
	switch s {
	case ShiftUpper:
		return unicode.ToUpper(r)
	case ShiftLower:
		return unicode.ToLower(r)
	default:
		return r
	}
}

// PadRule decides how a value shorter than its token is justified.
type PadRule int

const (
	// PadDefault behaves as PadRight, except for the first segment of an
	// overlay which behaves as PadLeft.
	PadDefault PadRule = iota
	// PadLeft right-justifies the value and fills on the left
	PadLeft
	// PadRight left-justifies the value and fills on the right
	PadRight
)

// String returns the configuration name of the rule
func (p PadRule) String() string {
	switch p {
	case PadLeft:
		return "left"
	case PadRight:
		return "right"
	default:
		return "default"
	}
}

// ParsePadRule converts a configuration string into a PadRule.
// An empty string yields PadDefault.
func ParsePadRule(s string) (PadRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PadDefault, nil
	case "left":
		return PadLeft, nil
	case "right":
		return PadRight, nil
	default:
		return PadDefault, fmt.Errorf("unknown pad rule %q (expected default, left or right)", s)
	}
}

// FixMode selects how an out-of-range token value is corrected.
type FixMode int

const (
	// KeepExistingValue reverts to the text the token had before the edit
	KeepExistingValue FixMode = iota
	// TakeClosestValidValue substitutes MinValue or the largest value below MaxValue
	TakeClosestValidValue
)

// String returns the configuration name of the mode
func (m FixMode) String() string {
	switch m {
	case TakeClosestValidValue:
		return "closest"
	default:
		return "keep"
	}
}

// ParseFixMode converts a configuration string into a FixMode.
func ParseFixMode(s string) (FixMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep", "keep-existing":
		return KeepExistingValue, nil
	case "closest", "take-closest":
		return TakeClosestValidValue, nil
	default:
		return KeepExistingValue, fmt.Errorf("unknown fix mode %q (expected keep or closest)", s)
	}
}

// Token is one maximal run of same-class mask characters.
//
// The positional fields (SeqNo through Shifts) are fixed when the mask is
// parsed. The remaining fields are customizations the owning widget may set
// between parses; Reconcile carries them over to a re-parsed token list.
type Token struct {
	SeqNo        int
	Text         string      // current display substring
	StartIndex   int         // offset into the display text, in runes
	Length       int         // length in runes
	IsLiteral    bool        // literal or split run
	IsSplit      bool        // run of split characters
	Mask         string      // unescaped mask slice, shift markers removed
	MaskRaw      string      // mask slice as written
	MaskRawStart int         // offset of MaskRaw in the mask, in runes
	Shifts       []CaseShift // one entry per rune of Mask

	MinValue       decimal.Decimal
	MaxValue       decimal.Decimal // exclusive
	SmallIncrement decimal.Decimal
	BigIncrement   decimal.Decimal
	CarryOver      bool // whether an overflow may propagate left of this token
	CarryOverScope int  // number of tokens to the left that may absorb a carry, 0 = unlimited
	ByDigit        *bool
	PadChar        rune // 0 = no pad character
	PadRule        PadRule
	ReverseUpDown  bool
	CustomValues   []string

	ValueTooSmallFixMode *FixMode
	ValueTooLargeFixMode *FixMode

	numFmt NumberFormat
}

// End returns the display offset just past the token.
func (t *Token) End() int {
	return t.StartIndex + t.Length
}

// CanEdit reports whether the token accepts edits: it must have text and be
// either non-literal or carry a custom-values list.
func (t *Token) CanEdit() bool {
	return utf8.RuneCountInString(t.Text) > 0 && (!t.IsLiteral || t.CustomValues != nil)
}

// AcceptsTyping reports whether free character typing may change the token.
func (t *Token) AcceptsTyping() bool {
	return !t.IsLiteral && t.Length > 0
}

// IsEditPosition reports whether the rune at offset i (relative to the token)
// is a wildcard position. Embedded separators and literal runs are not.
func (t *Token) IsEditPosition(i int) bool {
	if t.IsLiteral {
		return false
	}
	m := []rune(t.Mask)
	if i < 0 || i >= len(m) {
		return false
	}
	return IsWildcard(m[i])
}

// Wildcard returns the mask rune and case shift at offset i.
func (t *Token) Wildcard(i int) (rune, CaseShift) {
	m := []rune(t.Mask)
	if i < 0 || i >= len(m) {
		return 0, ShiftNone
	}
	shift := ShiftNone
	if i < len(t.Shifts) {
		shift = t.Shifts[i]
	}
	return m[i], shift
}

// NumberFormat returns the separators the token was parsed with.
func (t *Token) NumberFormat() NumberFormat {
	return t.numFmt.orDefault()
}

// Contains reports whether display offset pos falls inside the token.
func (t *Token) Contains(pos int) bool {
	return pos >= t.StartIndex && pos < t.End()
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	c := *t
	c.Shifts = slices.Clone(t.Shifts)
	if t.CustomValues != nil {
		c.CustomValues = slices.Clone(t.CustomValues)
	}
	if t.ByDigit != nil {
		v := *t.ByDigit
		c.ByDigit = &v
	}
	if t.ValueTooSmallFixMode != nil {
		v := *t.ValueTooSmallFixMode
		c.ValueTooSmallFixMode = &v
	}
	if t.ValueTooLargeFixMode != nil {
		v := *t.ValueTooLargeFixMode
		c.ValueTooLargeFixMode = &v
	}
	return &c
}

// WithText returns a copy of the token holding text at a new start offset.
func (t *Token) WithText(text string, start int) *Token {
	c := t.Clone()
	c.Text = text
	c.StartIndex = start
	c.Length = utf8.RuneCountInString(text)
	return c
}

// String returns a compact debug representation
func (t *Token) String() string {
	kind := "edit"
	switch {
	case t.IsSplit:
		kind = "split"
	case t.IsLiteral:
		kind = "literal"
	}
	return fmt.Sprintf("Token{seq=%d, %s, text=%q, start=%d, len=%d, mask=%q}",
		t.SeqNo, kind, t.Text, t.StartIndex, t.Length, t.MaskRaw)
}

// applyDefaults sets every customization field to its default for this token.
func (t *Token) applyDefaults() {
	d := defaultsFor(t)
	t.MinValue = d.MinValue
	t.MaxValue = d.MaxValue
	t.SmallIncrement = d.SmallIncrement
	t.BigIncrement = d.BigIncrement
	t.CarryOver = d.CarryOver
	t.CarryOverScope = d.CarryOverScope
	t.ByDigit = nil
	t.PadChar = 0
	t.PadRule = PadDefault
	t.ReverseUpDown = false
	t.CustomValues = nil
	t.ValueTooSmallFixMode = nil
	t.ValueTooLargeFixMode = nil
}

// defaultsFor computes the default customization values for t.
// MaxValue is 10^digits where digits counts the integer positions of the mask.
func defaultsFor(t *Token) Token {
	maxValue := decimal.New(1, int32(t.IntegerDigits()))
	big := maxValue.Div(decimal.NewFromInt(20))
	if two := decimal.NewFromInt(2); big.LessThan(two) {
		big = two
	}
	return Token{
		MinValue:       decimal.Zero,
		MaxValue:       maxValue,
		SmallIncrement: decimal.NewFromInt(1),
		BigIncrement:   big,
		CarryOver:      true,
	}
}

// Info is a serializable view of a token used by the CLI and the server.
type Info struct {
	SeqNo        int      `json:"seq" yaml:"seq"`
	Text         string   `json:"text" yaml:"text"`
	Start        int      `json:"start" yaml:"start"`
	Length       int      `json:"length" yaml:"length"`
	Literal      bool     `json:"literal" yaml:"literal"`
	Split        bool     `json:"split,omitempty" yaml:"split,omitempty"`
	Mask         string   `json:"mask" yaml:"mask"`
	MaskRaw      string   `json:"mask_raw" yaml:"mask_raw"`
	Shifts       []string `json:"shifts,omitempty" yaml:"shifts,omitempty"`
	Min          string   `json:"min" yaml:"min"`
	Max          string   `json:"max" yaml:"max"`
	CanEdit      bool     `json:"can_edit" yaml:"can_edit"`
	CustomValues []string `json:"custom_values,omitempty" yaml:"custom_values,omitempty"`
}

// Info returns the serializable view of the token.
func (t *Token) Info() Info {
	shifts := make([]string, len(t.Shifts))
	for i, s := range t.Shifts {
		shifts[i] = s.String()
	}
	return Info{
		SeqNo:        t.SeqNo,
		Text:         t.Text,
		Start:        t.StartIndex,
		Length:       t.Length,
		Literal:      t.IsLiteral,
		Split:        t.IsSplit,
		Mask:         t.Mask,
		MaskRaw:      t.MaskRaw,
		Shifts:       shifts,
		Min:          t.MinValue.String(),
		Max:          t.MaxValue.String(),
		CanEdit:      t.CanEdit(),
		CustomValues: t.CustomValues,
	}
}

// Infos converts a token list into serializable views.
func Infos(tokens []*Token) []Info {
	out := make([]Info, len(tokens))
	for i, t := range tokens {
		out[i] = t.Info()
	}
	return out
}

// At returns the token containing display offset pos, or the last token when
// pos is at the end of the text. Zero-width tokens are never returned.
func At(tokens []*Token, pos int) *Token {
	var last *Token
	for _, t := range tokens {
		if t.Length == 0 {
			continue
		}
		if t.Contains(pos) {
			return t
		}
		last = t
	}
	if last != nil && pos >= last.End() {
		return last
	}
	return nil
}

// Join concatenates the token texts back into a display string.
func Join(tokens []*Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

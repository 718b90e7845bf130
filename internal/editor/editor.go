package editor

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Change is one proposed or committed token text change.
type Change struct {
	Seq int    `json:"seq"`
	Old string `json:"old"`
	New string `json:"new"`
}

// Hook inspects a proposed change. It returns the (possibly rewritten)
// change and whether the edit may proceed.
type Hook func(Change) (Change, bool)

// Options configures a single KeyUpDown call.
type Options struct {
	WrapAround        bool
	WrapIfNoCarryRoom bool
	CarryOverEnabled  bool
	ByDigitDefault    bool

	// Caret is the display offset used to pick the character in by-digit mode.
	Caret int
	// PromptChar, when set, is part of every by-digit cycle and counts as
	// blank when parsing numbers.
	PromptChar rune
	// Mask is the current mask. Required to cycle custom values on a literal
	// token, whose value lives in the mask itself.
	Mask string

	TokenChanging Hook
}

// Mode is the editing mode chosen for a call.
type Mode int

const (
	ModeNone Mode = iota
	ModeCustom
	ModeByDigit
	ModeNumeric
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeCustom:
		return "custom"
	case ModeByDigit:
		return "by-digit"
	case ModeNumeric:
		return "numeric"
	default:
		return "none"
	}
}

// Result is the outcome of KeyUpDown. When Changed is false, Text and Mask
// equal the inputs.
type Result struct {
	Text      string
	Mask      string
	Changed   bool
	Cancelled bool
	Mode      Mode
	Changes   []Change
}

// KeyUpDown increments or decrements target by amount. When symbolic is set
// the magnitude of amount only selects the step: 1 means SmallIncrement and
// anything larger means BigIncrement.
//
// A zero amount, a token that cannot be edited, or an edit with no legal
// outcome returns an unchanged Result. The only errors are contract
// violations: a target outside tokens, or a hook rewrite of the wrong length.
func KeyUpDown(tokens []*mask.Token, target *mask.Token, displayText string, amount decimal.Decimal, symbolic bool, opts Options) (Result, error) {
	unchanged := Result{Text: displayText, Mask: opts.Mask}

	if target == nil || target.SeqNo < 0 || target.SeqNo >= len(tokens) || tokens[target.SeqNo] != target {
		return unchanged, ErrTokenNotFound
	}
	if amount.IsZero() || !target.CanEdit() {
		return unchanged, nil
	}
	if target.ReverseUpDown {
		amount = amount.Neg()
	}

	mode := SelectMode(target, opts)
	unchanged.Mode = mode

	var changes []Change
	switch mode {
	case ModeCustom:
		c, ok := cycleCustom(target, amount.Sign(), opts)
		if !ok {
			return unchanged, nil
		}
		changes = []Change{c}
	case ModeByDigit:
		c, ok := cycleDigit(target, amount.Sign(), opts)
		if !ok {
			return unchanged, nil
		}
		changes = []Change{c}
	case ModeNumeric:
		changes = numericEdit(tokens, target, resolveAmount(target, amount, symbolic), opts)
	}

	changes = slices.DeleteFunc(changes, func(c Change) bool { return c.Old == c.New })
	if len(changes) == 0 {
		return unchanged, nil
	}

	for i, c := range changes {
		if opts.TokenChanging == nil {
			continue
		}
		next, proceed := opts.TokenChanging(c)
		logging.LogVerdict("token_changing", c.Seq, !proceed)
		if !proceed {
			unchanged.Cancelled = true
			return unchanged, nil
		}
		if utf8.RuneCountInString(next.New) != utf8.RuneCountInString(c.New) {
			return unchanged, fmt.Errorf("token %d: %w", c.Seq, ErrInvalidProposal)
		}
		changes[i].New = next.New
	}

	text := splice(tokens, displayText, changes)
	newMask := opts.Mask
	if mode == ModeCustom && target.IsLiteral {
		// the literal value lives in the mask; rewrite it from the final text
		newMask = mask.ReplaceLiteral(opts.Mask, target, changes[0].New)
	}

	logging.Debug("Token edited",
		zap.Int("seq", target.SeqNo),
		zap.Stringer("mode", mode),
		zap.String("amount", amount.String()),
		zap.String("text", text))

	return Result{Text: text, Mask: newMask, Changed: true, Mode: mode, Changes: changes}, nil
}

// SelectMode returns the editing mode KeyUpDown would use for target.
func SelectMode(target *mask.Token, opts Options) Mode {
	if !target.CanEdit() {
		return ModeNone
	}
	if target.CustomValues != nil {
		return ModeCustom
	}
	byDigit := opts.ByDigitDefault
	if target.ByDigit != nil {
		byDigit = *target.ByDigit
	}
	if byDigit {
		return ModeByDigit
	}
	if _, ok := target.ParseValue(target.Text, opts.PromptChar); !ok {
		return ModeByDigit
	}
	return ModeNumeric
}

// resolveAmount turns a symbolic amount into the token's increment.
func resolveAmount(t *mask.Token, amount decimal.Decimal, symbolic bool) decimal.Decimal {
	if !symbolic {
		return amount
	}
	step := t.SmallIncrement
	if amount.Abs().GreaterThan(decimal.NewFromInt(1)) {
		step = t.BigIncrement
	}
	if amount.IsNegative() {
		return step.Neg()
	}
	return step
}

// splice writes every change into the display text. Changes may alter the
// token length (literal custom values), so they are applied right to left.
func splice(tokens []*mask.Token, text string, changes []Change) string {
	ordered := slices.Clone(changes)
	slices.SortFunc(ordered, func(a, b Change) int { return b.Seq - a.Seq })

	src := []rune(text)
	for _, c := range ordered {
		t := tokens[c.Seq]
		out := make([]rune, 0, len(src)+len(c.New))
		out = append(out, src[:t.StartIndex]...)
		out = append(out, []rune(c.New)...)
		out = append(out, src[t.End():]...)
		src = out
	}
	return string(src)
}

package session

import (
	"slices"

	"github.com/muurk/maskedit/internal/editor"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/overlay"
	"github.com/muurk/maskedit/internal/validate"
	"github.com/shopspring/decimal"
)

// insert overlays typed or pasted text onto the selection. A caret
// overwrites to the right and keeps the characters it does not reach; a
// selection is replaced using the pad rule of the token it starts in.
func (e *Engine) insert(input string) (Output, error) {
	if input == "" {
		return e.unchanged(), nil
	}
	e.enter(PhaseOverlaying)

	src := []rune(e.text)
	start, end := e.sel.Start, len(src)
	rule, pad, keep := mask.PadRight, rune(0), true
	if e.sel.Length > 0 {
		end = e.sel.End()
		if t := mask.At(e.tokens, start); t != nil {
			rule, pad = t.PadRule, t.PadChar
		}
		if pad == 0 {
			pad = e.cfg.PromptChar
		}
		keep = false
	}

	prefix, segs := overlay.Split(string(src[start:end]), func(i int) bool {
		return e.editPosition(start + i)
	})
	if len(segs) == 0 {
		out := e.unchanged()
		out.Rejected = true
		return out, nil
	}

	merged := overlay.Merge(input, segs, rule, pad, keep)
	base := start + len([]rune(prefix))
	next := slices.Clone(src)
	for i, r := range []rune(merged.Text) {
		pos := base + i
		if r == src[pos] || !e.editPosition(pos) {
			continue
		}
		t := mask.At(e.tokens, pos)
		wildcard, shift := t.Wildcard(pos - t.StartIndex)
		r = shift.Apply(r)
		if r != pad && r != e.cfg.PromptChar && !mask.Accepts(wildcard, r) {
			out := e.unchanged()
			out.Rejected = true
			return out, nil
		}
		next[pos] = r
	}

	caret := start
	if merged.End > 0 {
		caret = base + merged.End
	}
	if slices.Equal(next, src) {
		return e.commit(e.mask, e.text, Selection{Start: caret}, nil, merged.Full)
	}

	final, changes, ok, err := e.validateChanged(string(next))
	if err != nil {
		return Output{}, err
	}
	if !ok {
		out := e.unchanged()
		out.Cancelled = true
		return out, nil
	}
	if final == e.text {
		out := e.unchanged()
		out.Rejected = true
		return out, nil
	}
	return e.commit(e.mask, final, Selection{Start: caret}, changes, merged.Full)
}

// clear blanks the selection, or the editable character at (Delete) or
// before (Backspace) the caret. Blanked positions take the token pad
// character, or the prompt character when the token has none.
func (e *Engine) clear(backward bool) (Output, error) {
	e.enter(PhaseEditing)

	src := []rune(e.text)
	caret := e.sel.Start
	var positions []int
	switch {
	case e.sel.Length > 0:
		for p := e.sel.Start; p < e.sel.End(); p++ {
			if e.editPosition(p) {
				positions = append(positions, p)
			}
		}
	case backward:
		for p := caret - 1; p >= 0; p-- {
			if e.editPosition(p) {
				positions = append(positions, p)
				caret = p
				break
			}
		}
	default:
		for p := caret; p < len(src); p++ {
			if e.editPosition(p) {
				positions = append(positions, p)
				break
			}
		}
	}
	if len(positions) == 0 {
		return e.unchanged(), nil
	}

	next := slices.Clone(src)
	for _, p := range positions {
		t := mask.At(e.tokens, p)
		fill := t.PadChar
		if fill == 0 {
			fill = e.cfg.PromptChar
		}
		next[p] = fill
	}

	fresh, err := e.parser.Parse(e.mask, string(next), nil)
	if err != nil {
		return Output{}, err
	}
	changes := diffTokens(e.tokens, fresh)
	for i, c := range changes {
		text, ok, err := offer(e.hooks.OnTokenDeleting, ProposedChange{Kind: ChangeDelete, Seq: c.Seq, OldText: c.Old, NewText: c.New})
		if err != nil {
			return Output{}, err
		}
		if !ok {
			out := e.unchanged()
			out.Cancelled = true
			return out, nil
		}
		t := fresh[c.Seq]
		copy(next[t.StartIndex:t.End()], []rune(text))
		changes[i].New = text
	}

	return e.commit(e.mask, string(next), Selection{Start: caret}, changes, false)
}

// targetToken returns the token under the caret, or the nearest editable
// token to its left, then to its right.
func (e *Engine) targetToken() *mask.Token {
	t := mask.At(e.tokens, e.sel.Start)
	if t == nil {
		return nil
	}
	if t.CanEdit() {
		return t
	}
	for i := t.SeqNo - 1; i >= 0; i-- {
		if e.tokens[i].CanEdit() {
			return e.tokens[i]
		}
	}
	for i := t.SeqNo + 1; i < len(e.tokens); i++ {
		if e.tokens[i].CanEdit() {
			return e.tokens[i]
		}
	}
	return nil
}

// keyUpDown runs the value editor on the target token.
func (e *Engine) keyUpDown(amount decimal.Decimal, symbolic, byDigit bool) (Output, error) {
	e.enter(PhaseEditing)

	target := e.targetToken()
	if target == nil {
		return e.unchanged(), nil
	}
	tokens := e.Tokens()
	t := tokens[target.SeqNo]
	if byDigit {
		forced := true
		t.ByDigit = &forced
	}

	caret := e.sel.Start
	if !t.Contains(caret) {
		caret = t.StartIndex
	}
	res, err := editor.KeyUpDown(tokens, t, e.text, amount, symbolic, editor.Options{
		WrapAround:        e.cfg.WrapAround,
		WrapIfNoCarryRoom: e.cfg.WrapIfNoCarryRoom,
		CarryOverEnabled:  e.cfg.CarryOverEnabled,
		ByDigitDefault:    e.cfg.ByDigitDefault,
		Caret:             caret,
		PromptChar:        e.cfg.PromptChar,
		Mask:              e.mask,
		TokenChanging:     e.tokenChanging,
	})
	if err != nil {
		return Output{}, err
	}
	if res.Cancelled {
		out := e.unchanged()
		out.Cancelled = true
		return out, nil
	}
	if !res.Changed {
		return e.unchanged(), nil
	}

	e.enter(PhaseValidating)
	text, changes := e.validateEdited(res)
	if len(changes) == 0 {
		out := e.unchanged()
		out.Rejected = true
		return out, nil
	}
	after, err := e.parser.Parse(res.Mask, text, nil)
	if err != nil {
		return Output{}, err
	}
	span := after[t.SeqNo]
	sel := Selection{Start: span.StartIndex, Length: span.Length}
	if byDigit {
		sel = Selection{Start: caret}
	}
	return e.commit(res.Mask, text, sel, changes, false)
}

// validateEdited range-checks every token the value editor changed and
// applies the fix modes. Changes that fix back to the old text are dropped.
// A rewritten literal mask moves token positions and is passed through.
func (e *Engine) validateEdited(res editor.Result) (string, []Change) {
	if res.Mask != e.mask {
		return res.Text, res.Changes
	}

	text := []rune(res.Text)
	defaults := validate.Defaults{TooSmall: e.cfg.TooSmall, TooLarge: e.cfg.TooLarge}
	var changes []Change
	for _, c := range res.Changes {
		t := e.tokens[c.Seq]
		current := c.Old
		final, fixed := validate.WithPrompt(t, &current, c.New, defaults, e.cfg.PromptChar)
		if fixed && len([]rune(final)) != t.Length {
			final = current
		}
		copy(text[t.StartIndex:t.End()], []rune(final))
		if final != c.Old {
			changes = append(changes, Change{Seq: c.Seq, Old: c.Old, New: final})
		}
	}
	return string(text), changes
}

// tokenChanging adapts OnTokenChanging to the editor hook.
func (e *Engine) tokenChanging(c editor.Change) (editor.Change, bool) {
	if e.hooks.OnTokenChanging == nil {
		return c, true
	}
	v := e.hooks.OnTokenChanging(ProposedChange{Kind: ChangeToken, Seq: c.Seq, OldText: c.Old, NewText: c.New})
	if v.Cancelled() {
		return c, false
	}
	c.New = v.change.NewText
	return c, true
}

// cycleDigit steps the character under the caret.
func (e *Engine) cycleDigit(dir int) (Output, error) {
	if dir == 0 {
		return e.unchanged(), nil
	}
	return e.keyUpDown(decimal.NewFromInt(int64(dir)), false, true)
}

// selectToken selects token seq, or the next editable token after it, or
// the closest one before it.
func (e *Engine) selectToken(seq int) (Output, error) {
	if seq < 0 || seq >= len(e.tokens) {
		return Output{}, ErrTokenNotFound
	}
	e.enter(PhaseApplying)

	pick := -1
	for i := seq; i < len(e.tokens); i++ {
		if e.tokens[i].CanEdit() {
			pick = i
			break
		}
	}
	for i := seq - 1; pick < 0 && i >= 0; i-- {
		if e.tokens[i].CanEdit() {
			pick = i
		}
	}
	if pick >= 0 {
		t := e.tokens[pick]
		e.sel = Selection{Start: t.StartIndex, Length: t.Length}
	}
	return e.unchanged(), nil
}

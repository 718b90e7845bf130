package editor

import (
	"strings"

	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/validate"
)

// EditOffset returns the token-relative offset of the editable position
// closest to the display caret, searching left first. It returns -1 when the
// token has no editable position.
func EditOffset(t *mask.Token, caret int) int {
	off := caret - t.StartIndex
	if off >= t.Length {
		off = t.Length - 1
	}
	if off < 0 {
		off = 0
	}
	for i := off; i >= 0; i-- {
		if t.IsEditPosition(i) {
			return i
		}
	}
	for i := off + 1; i < t.Length; i++ {
		if t.IsEditPosition(i) {
			return i
		}
	}
	return -1
}

// cycleDigit steps the character under the caret through the allowed set of
// its wildcard until the token text is valid and in range.
func cycleDigit(t *mask.Token, dir int, opts Options) (Change, bool) {
	off := EditOffset(t, opts.Caret)
	if off < 0 || dir == 0 {
		return Change{}, false
	}

	wildcard, shift := t.Wildcard(off)
	set := []rune(mask.CycleSet(wildcard, shift))
	if opts.PromptChar != 0 && !strings.ContainsRune(string(set), opts.PromptChar) {
		set = append(set, opts.PromptChar)
	}
	if len(set) == 0 {
		return Change{}, false
	}

	text := []rune(t.Text)
	idx := -1
	for i, r := range set {
		if r == text[off] {
			idx = i
			break
		}
	}
	if idx < 0 && dir < 0 {
		idx = len(set)
	}

	for n := 1; n <= len(set); n++ {
		i := ((idx+dir*n)%len(set) + len(set)) % len(set)
		cand := set[i]
		if cand == text[off] {
			continue
		}
		if cand != opts.PromptChar && !mask.Accepts(wildcard, cand) {
			continue
		}
		next := make([]rune, len(text))
		copy(next, text)
		next[off] = cand
		if acceptDigit(t, wildcard, string(next), opts.PromptChar) {
			return Change{Seq: t.SeqNo, Old: t.Text, New: string(next)}, true
		}
	}
	return Change{}, false
}

// acceptDigit reports whether a cycled token text may be committed. Under a
// digit wildcard the text must parse as a number inside the token range, so
// a prompt left between two digits is skipped.
func acceptDigit(t *mask.Token, wildcard rune, text string, prompt rune) bool {
	if !mask.IsDigitWildcard(wildcard) {
		return validate.InRange(t, text, prompt)
	}
	v, ok := t.ParseValue(text, prompt)
	return ok && t.InRange(v)
}

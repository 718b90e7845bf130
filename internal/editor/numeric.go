package editor

import (
	"unicode/utf8"

	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// stepOutcome is the result of applying a delta to one token.
type stepOutcome int

const (
	stepDone    stepOutcome = iota // value settled, carrying stops
	stepWrapped                    // value wrapped, the overflow must be carried
)

// step applies delta to v within the range of t. Values past MaxValue clamp
// to MaxValue-SmallIncrement when that is still above v; otherwise they wrap
// to MinValue, or clamp to the largest representable value when wrapping is
// off. Values below MinValue mirror this, wrapping to MaxValue-SmallIncrement.
func step(t *mask.Token, v, delta decimal.Decimal, wrap bool) (decimal.Decimal, stepOutcome) {
	nv := v.Add(delta)
	if t.InRange(nv) {
		return nv, stepDone
	}

	top := t.MaxValue.Sub(t.SmallIncrement)
	if nv.GreaterThanOrEqual(t.MaxValue) {
		switch {
		case top.GreaterThan(v):
			return top, stepDone
		case wrap:
			return t.MinValue, stepWrapped
		default:
			return t.MaxRepresentable(), stepDone
		}
	}

	switch {
	case t.MinValue.LessThan(v):
		return t.MinValue, stepDone
	case wrap:
		return top, stepWrapped
	default:
		return t.MinValue, stepDone
	}
}

// predecessor finds the nearest token left of seq that can absorb a carry:
// the first non-literal token, or a literal with custom values (which ends
// the chain). It returns nil when there is none.
func predecessor(tokens []*mask.Token, seq int) *mask.Token {
	for i := seq - 1; i >= 0; i-- {
		t := tokens[i]
		if t.Length == 0 {
			continue
		}
		if !t.IsLiteral || t.CustomValues != nil {
			return t
		}
	}
	return nil
}

// numericEdit applies delta to target and carries overflows leftwards.
// It returns the token changes to commit, or nil when the edit is rejected.
func numericEdit(tokens []*mask.Token, target *mask.Token, delta decimal.Decimal, opts Options) []Change {
	v, ok := target.ParseValue(target.Text, opts.PromptChar)
	if !ok {
		return nil
	}

	nv, outcome := step(target, v, delta, opts.WrapAround)
	pending := []Change{{Seq: target.SeqNo, Old: target.Text, New: target.FormatValue(nv)}}
	if outcome == stepDone {
		return checkLengths(tokens, pending)
	}

	sign := int64(delta.Sign())
	scope := target.CarryOverScope
	carried := 0
	cur := target
	for {
		if !opts.CarryOverEnabled || !cur.CarryOver {
			break
		}
		if scope > 0 && carried >= scope {
			break
		}
		p := predecessor(tokens, cur.SeqNo)
		if p == nil || p.CustomValues != nil {
			break
		}
		pv, ok := p.ParseValue(p.Text, opts.PromptChar)
		if !ok {
			break
		}
		carried++

		pnv, pout := step(p, pv, p.SmallIncrement.Mul(decimal.NewFromInt(sign)), opts.WrapAround)
		pending = append(pending, Change{Seq: p.SeqNo, Old: p.Text, New: p.FormatValue(pnv)})
		if pout == stepDone {
			return checkLengths(tokens, pending)
		}
		cur = p
	}

	if carried == 0 {
		// nothing could take the carry: the target simply wraps
		return checkLengths(tokens, pending)
	}
	if !opts.WrapIfNoCarryRoom {
		logging.Debug("Carry exhausted, edit rejected",
			zap.Int("seq", target.SeqNo),
			zap.Int("carried", carried))
		return nil
	}
	return checkLengths(tokens, pending)
}

// checkLengths rejects the whole edit if any formatted value no longer fits
// its token.
func checkLengths(tokens []*mask.Token, changes []Change) []Change {
	for _, c := range changes {
		if utf8.RuneCountInString(c.New) != tokens[c.Seq].Length {
			return nil
		}
	}
	return changes
}

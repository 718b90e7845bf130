package session

import (
	"fmt"
	"unicode/utf8"

	"github.com/muurk/maskedit/internal/logging"
)

// ChangeKind says which hook a proposal is offered to.
type ChangeKind string

const (
	ChangeValue  ChangeKind = "value"
	ChangeToken  ChangeKind = "token"
	ChangeDelete ChangeKind = "delete"
)

// ProposedChange is a text change offered to a hook before it is committed.
// Seq is -1 for whole-value changes.
type ProposedChange struct {
	Kind    ChangeKind
	Seq     int
	OldText string
	NewText string
}

// Verdict is a hook's answer to a ProposedChange.
type Verdict struct {
	cancel bool
	change ProposedChange
}

// Proceed accepts p. NewText may differ from the proposal as long as it has
// the same length.
func Proceed(p ProposedChange) Verdict {
	return Verdict{change: p}
}

// Cancel vetoes the proposal and aborts the pass.
func Cancel() Verdict {
	return Verdict{cancel: true}
}

// Cancelled reports whether the verdict vetoes the change.
func (v Verdict) Cancelled() bool {
	return v.cancel
}

// Hook decides on a proposed change.
type Hook func(ProposedChange) Verdict

// Hooks are the host extension points. Any of them may be nil.
type Hooks struct {
	OnValueChanging Hook
	OnTokenChanging Hook
	OnTokenDeleting Hook
	// OnValueChanged is told about every committed change.
	OnValueChanged func(Output)
}

// offer passes p to h. It returns the text to use and false when the hook
// cancelled.
func offer(h Hook, p ProposedChange) (string, bool, error) {
	if h == nil {
		return p.NewText, true, nil
	}
	v := h(p)
	logging.LogVerdict(string(p.Kind), p.Seq, v.cancel)
	if v.cancel {
		return "", false, nil
	}
	if utf8.RuneCountInString(v.change.NewText) != utf8.RuneCountInString(p.NewText) {
		return "", false, fmt.Errorf("%s hook, token %d: %w", p.Kind, p.Seq, ErrInvalidProposal)
	}
	return v.change.NewText, true, nil
}

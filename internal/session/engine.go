package session

import (
	"fmt"
	"sync/atomic"

	"github.com/muurk/maskedit/internal/editor"
	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/mask"
	"github.com/muurk/maskedit/internal/validate"
	"go.uber.org/zap"
)

// Change is a committed token text change.
type Change = editor.Change

// Selection is a range of the display text in runes. A zero length is a
// caret.
type Selection struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the offset just past the selection.
func (s Selection) End() int {
	return s.Start + s.Length
}

// Output is what a command returns to the host.
type Output struct {
	Text      string    `json:"text"`
	Mask      string    `json:"mask"`
	Changed   bool      `json:"changed"`
	Cancelled bool      `json:"cancelled"`
	Rejected  bool      `json:"rejected"`
	Full      bool      `json:"full"`
	Selection Selection `json:"selection"`
	Changes   []Change  `json:"changes,omitempty"`
}

var sessionIDs atomic.Uint64

// Engine holds the state of one masked field. It is not safe for
// concurrent use; hosts serialize commands per field.
type Engine struct {
	cfg    Config
	parser *mask.Parser
	hooks  Hooks

	mask   string
	text   string
	tokens []*mask.Token
	sel    Selection

	phase Phase
	pass  uint64
}

// New parses mask and returns an engine holding text. An empty text starts
// from the mask template filled with the prompt character.
func New(m, text string, cfg Config) (*Engine, error) {
	if cfg.PromptChar == 0 {
		cfg.PromptChar = DefaultPromptChar
	}
	e := &Engine{cfg: cfg, parser: cfg.parser()}

	if text == "" {
		t, err := e.parser.Template(m, cfg.PromptChar)
		if err != nil {
			return nil, err
		}
		text = t
	}
	tokens, err := e.parser.Parse(m, text, nil)
	if err != nil {
		return nil, err
	}
	e.mask, e.text, e.tokens = m, text, tokens
	e.sel = Selection{Start: firstEditable(tokens)}
	return e, nil
}

// SetHooks installs the host extension points.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Text returns the current display text.
func (e *Engine) Text() string { return e.text }

// Mask returns the current mask.
func (e *Engine) Mask() string { return e.mask }

// Selection returns the current selection.
func (e *Engine) Selection() Selection { return e.sel }

// Phase returns the pipeline phase. It is PhaseIdle between commands.
func (e *Engine) Phase() Phase { return e.phase }

// Tokens returns a copy of the current token list.
func (e *Engine) Tokens() []*mask.Token {
	out := make([]*mask.Token, len(e.tokens))
	for i, t := range e.tokens {
		out[i] = t.Clone()
	}
	return out
}

// SetSelection moves the selection, clamped to the display text.
func (e *Engine) SetSelection(s Selection) {
	e.sel = e.clamp(s)
}

func (e *Engine) clamp(s Selection) Selection {
	n := len([]rune(e.text))
	s.Start = max(0, min(s.Start, n))
	s.Length = max(0, min(s.Length, n-s.Start))
	return s
}

// Customize lets the host change the customization fields of one token.
// Positional fields set by fn are ignored.
func (e *Engine) Customize(seq int, fn func(*mask.Token)) error {
	if e.phase != PhaseIdle {
		return ErrReentrant
	}
	if seq < 0 || seq >= len(e.tokens) {
		return fmt.Errorf("customize token %d: %w", seq, ErrTokenNotFound)
	}
	t := e.tokens[seq].Clone()
	fn(t)

	fresh := e.tokens[seq]
	t.SeqNo, t.Text, t.StartIndex, t.Length = fresh.SeqNo, fresh.Text, fresh.StartIndex, fresh.Length
	t.IsLiteral, t.IsSplit, t.Mask, t.MaskRaw, t.MaskRawStart = fresh.IsLiteral, fresh.IsSplit, fresh.Mask, fresh.MaskRaw, fresh.MaskRawStart
	e.tokens[seq] = t
	return nil
}

// SetMask replaces the mask and text. Customizations carry over by position
// unless reset is set.
func (e *Engine) SetMask(m, text string, reset bool) error {
	if e.phase != PhaseIdle {
		return ErrReentrant
	}
	if text == "" {
		t, err := e.parser.Template(m, e.cfg.PromptChar)
		if err != nil {
			return err
		}
		text = t
	}
	var existing []*mask.Token
	if !reset {
		existing = e.tokens
	}
	tokens, err := e.parser.Parse(m, text, existing)
	if err != nil {
		return err
	}
	e.mask, e.text, e.tokens = m, text, tokens
	e.sel = e.clamp(e.sel)
	return nil
}

// enter moves the pipeline to p.
func (e *Engine) enter(p Phase) {
	e.phase = p
	logging.LogPhase(e.pass, p.String())
}

// Execute runs one command through the pipeline.
func (e *Engine) Execute(cmd Command) (Output, error) {
	if e.phase != PhaseIdle {
		return e.unchanged(), ErrReentrant
	}
	e.pass = sessionIDs.Add(1)
	defer e.enter(PhaseIdle)

	logging.LogCommand(e.pass, string(cmd.Kind), zap.Stringer("command", cmd))
	prev := e.sel
	if cmd.Selection != nil {
		e.sel = e.clamp(*cmd.Selection)
	}

	e.enter(PhaseParsing)
	var (
		out Output
		err error
	)
	switch cmd.Kind {
	case KindTypeChar, KindPaste:
		out, err = e.insert(cmd.Text)
	case KindDelete:
		out, err = e.clear(false)
	case KindBackspace:
		out, err = e.clear(true)
	case KindIncrement:
		out, err = e.keyUpDown(cmd.Amount, cmd.Symbolic, false)
	case KindCycleDigit:
		out, err = e.cycleDigit(cmd.Dir)
	case KindSelectToken:
		out, err = e.selectToken(cmd.Seq)
	default:
		e.sel = prev
		return e.unchanged(), fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
	if err != nil {
		e.sel = prev
		return e.unchanged(), err
	}
	// a command that changes nothing leaves the selection where it was
	if out.Cancelled || out.Rejected {
		e.sel = prev
		out.Selection = prev
	}
	return out, nil
}

func (e *Engine) unchanged() Output {
	return Output{Text: e.text, Mask: e.mask, Selection: e.sel}
}

// commit offers the final text to OnValueChanging, re-parses and stores it.
func (e *Engine) commit(newMask, newText string, sel Selection, changes []Change, full bool) (Output, error) {
	e.enter(PhaseApplying)

	if newText == e.text && newMask == e.mask {
		e.sel = e.clamp(sel)
		out := e.unchanged()
		out.Full = full
		return out, nil
	}

	text, ok, err := offer(e.hooks.OnValueChanging, ProposedChange{Kind: ChangeValue, Seq: -1, OldText: e.text, NewText: newText})
	if err != nil {
		return Output{}, err
	}
	if !ok {
		out := e.unchanged()
		out.Cancelled = true
		return out, nil
	}

	tokens, err := e.parser.Parse(newMask, text, e.tokens)
	if err != nil {
		return Output{}, fmt.Errorf("re-parse after edit: %w", err)
	}
	if text != newText {
		changes = diffTokens(e.tokens, tokens)
	}

	e.mask, e.text, e.tokens = newMask, text, tokens
	e.sel = e.clamp(sel)
	for _, c := range changes {
		logging.LogTokenChange(c.Seq, c.Old, c.New)
	}

	out := Output{
		Text:      e.text,
		Mask:      e.mask,
		Changed:   true,
		Full:      full,
		Selection: e.sel,
		Changes:   changes,
	}
	if e.hooks.OnValueChanged != nil {
		e.hooks.OnValueChanged(out)
	}
	return out, nil
}

// validateChanged runs the validator over every token whose text differs
// between old and the re-parsed candidate, then offers each change to
// OnTokenChanging. It returns the final text and the change log.
func (e *Engine) validateChanged(candidate string) (string, []Change, bool, error) {
	e.enter(PhaseValidating)

	fresh, err := e.parser.Parse(e.mask, candidate, e.tokens)
	if err != nil {
		return "", nil, false, err
	}

	text := []rune(candidate)
	var changes []Change
	for i, t := range fresh {
		old := e.tokens[i]
		if t.Text == old.Text {
			continue
		}
		current := old.Text
		final, fixed := validate.WithPrompt(t, &current, t.Text,
			validate.Defaults{TooSmall: e.cfg.TooSmall, TooLarge: e.cfg.TooLarge}, e.cfg.PromptChar)
		if fixed && len([]rune(final)) != t.Length {
			final = current
		}
		if final == old.Text {
			continue
		}

		final, ok, err := offer(e.hooks.OnTokenChanging, ProposedChange{Kind: ChangeToken, Seq: t.SeqNo, OldText: old.Text, NewText: final})
		if err != nil {
			return "", nil, false, err
		}
		if !ok {
			return "", nil, false, nil
		}
		copy(text[t.StartIndex:t.End()], []rune(final))
		changes = append(changes, Change{Seq: t.SeqNo, Old: old.Text, New: final})
	}

	// tokens that validated back to their old text
	for i, t := range fresh {
		if t.Text != e.tokens[i].Text && !hasSeq(changes, t.SeqNo) {
			copy(text[t.StartIndex:t.End()], []rune(e.tokens[i].Text))
		}
	}
	return string(text), changes, true, nil
}

func hasSeq(changes []Change, seq int) bool {
	for _, c := range changes {
		if c.Seq == seq {
			return true
		}
	}
	return false
}

// diffTokens lists the tokens whose text differs between two parses of the
// same mask.
func diffTokens(old, fresh []*mask.Token) []Change {
	var out []Change
	for i := range fresh {
		if i < len(old) && old[i].Text != fresh[i].Text {
			out = append(out, Change{Seq: i, Old: old[i].Text, New: fresh[i].Text})
		}
	}
	return out
}

// firstEditable returns the start of the first token that accepts edits.
func firstEditable(tokens []*mask.Token) int {
	for _, t := range tokens {
		if t.CanEdit() {
			return t.StartIndex
		}
	}
	return 0
}

// editPosition reports whether display offset pos is a wildcard position.
func (e *Engine) editPosition(pos int) bool {
	t := mask.At(e.tokens, pos)
	return t != nil && t.Contains(pos) && t.IsEditPosition(pos-t.StartIndex)
}

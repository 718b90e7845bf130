package session

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CommandKind names a host command.
type CommandKind string

const (
	KindTypeChar    CommandKind = "type"
	KindPaste       CommandKind = "paste"
	KindDelete      CommandKind = "delete"
	KindBackspace   CommandKind = "backspace"
	KindIncrement   CommandKind = "increment"
	KindCycleDigit  CommandKind = "cycle_digit"
	KindSelectToken CommandKind = "select_token"
)

// Command is one decoded host command. Only the fields used by Kind are
// read. Selection, when set, replaces the engine selection before the
// command runs.
type Command struct {
	Kind      CommandKind     `json:"kind"`
	Text      string          `json:"text,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Symbolic  bool            `json:"symbolic,omitempty"`
	Dir       int             `json:"dir,omitempty"`
	Seq       int             `json:"seq,omitempty"`
	Selection *Selection      `json:"selection,omitempty"`
}

// TypeChar types a single character at the selection.
func TypeChar(r rune) Command {
	return Command{Kind: KindTypeChar, Text: string(r)}
}

// Paste inserts text at the selection.
func Paste(text string) Command {
	return Command{Kind: KindPaste, Text: text}
}

// Delete clears the selection or the character at the caret.
func Delete() Command {
	return Command{Kind: KindDelete}
}

// Backspace clears the selection or the character before the caret.
func Backspace() Command {
	return Command{Kind: KindBackspace}
}

// Increment changes the token under the caret by amount. With symbolic set,
// ±1 selects the small increment and larger magnitudes the big increment.
func Increment(amount decimal.Decimal, symbolic bool) Command {
	return Command{Kind: KindIncrement, Amount: amount, Symbolic: symbolic}
}

// CycleDigit steps the character under the caret up (dir > 0) or down.
func CycleDigit(dir int) Command {
	return Command{Kind: KindCycleDigit, Dir: dir}
}

// SelectToken selects the token with the given sequence number.
func SelectToken(seq int) Command {
	return Command{Kind: KindSelectToken, Seq: seq}
}

// String returns a compact representation for logs
func (c Command) String() string {
	switch c.Kind {
	case KindTypeChar, KindPaste:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Text)
	case KindIncrement:
		return fmt.Sprintf("%s(%s, symbolic=%v)", c.Kind, c.Amount, c.Symbolic)
	case KindCycleDigit:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Dir)
	case KindSelectToken:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Seq)
	default:
		return string(c.Kind)
	}
}

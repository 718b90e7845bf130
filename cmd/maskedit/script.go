package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/muurk/maskedit/internal/session"
)

// scriptStep is one parsed key-script word. Exactly one of Command and
// Select is set.
type scriptStep struct {
	Word    string
	Command *session.Command
	Select  *session.Selection
}

var (
	one = decimal.NewFromInt(1)
	ten = decimal.NewFromInt(10)
)

// parseScript turns key-script words into steps:
//
//	type:TEXT   overlay TEXT at the selection
//	key:C       type the single character C
//	up, down    small increment, pgup, pgdn big increment
//	inc:N       add N to the token under the caret
//	digit+, digit-  cycle the character under the caret
//	del, bksp   clear forwards or backwards
//	token:N     select token N
//	caret:N     move the caret, sel:S,L select L characters from S
func parseScript(words []string) ([]scriptStep, error) {
	steps := make([]scriptStep, 0, len(words))
	for _, w := range words {
		step, err := parseWord(w)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseWord(w string) (scriptStep, error) {
	cmd := func(c session.Command) (scriptStep, error) {
		return scriptStep{Word: w, Command: &c}, nil
	}

	switch w {
	case "up":
		return cmd(session.Increment(one, true))
	case "down":
		return cmd(session.Increment(one.Neg(), true))
	case "pgup":
		return cmd(session.Increment(ten, true))
	case "pgdn":
		return cmd(session.Increment(ten.Neg(), true))
	case "digit+":
		return cmd(session.CycleDigit(1))
	case "digit-":
		return cmd(session.CycleDigit(-1))
	case "del":
		return cmd(session.Delete())
	case "bksp":
		return cmd(session.Backspace())
	}

	name, arg, ok := strings.Cut(w, ":")
	if !ok {
		return scriptStep{}, fmt.Errorf("unknown key %q", w)
	}
	switch name {
	case "type":
		return cmd(session.Paste(arg))
	case "key":
		r := []rune(arg)
		if len(r) != 1 {
			return scriptStep{}, fmt.Errorf("%q: key takes exactly one character", w)
		}
		return cmd(session.TypeChar(r[0]))
	case "inc":
		d, err := decimal.NewFromString(arg)
		if err != nil {
			return scriptStep{}, fmt.Errorf("%q: %w", w, err)
		}
		return cmd(session.Increment(d, false))
	case "token":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return scriptStep{}, fmt.Errorf("%q: %w", w, err)
		}
		return cmd(session.SelectToken(n))
	case "caret":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return scriptStep{}, fmt.Errorf("%q: %w", w, err)
		}
		return scriptStep{Word: w, Select: &session.Selection{Start: n}}, nil
	case "sel":
		s, l, ok := strings.Cut(arg, ",")
		start, err1 := strconv.Atoi(s)
		length, err2 := strconv.Atoi(l)
		if !ok || err1 != nil || err2 != nil {
			return scriptStep{}, fmt.Errorf("%q: expected sel:START,LENGTH", w)
		}
		return scriptStep{Word: w, Select: &session.Selection{Start: start, Length: length}}, nil
	}
	return scriptStep{}, fmt.Errorf("unknown key %q", w)
}

// stepResult is the outcome of one script step.
type stepResult struct {
	Word      string           `json:"word" yaml:"word"`
	Text      string           `json:"text" yaml:"text"`
	Changed   bool             `json:"changed,omitempty" yaml:"changed,omitempty"`
	Rejected  bool             `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	Cancelled bool             `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	Changes   []session.Change `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// runScript executes steps on eng, stopping at the first error.
func runScript(eng *session.Engine, steps []scriptStep) ([]stepResult, error) {
	results := make([]stepResult, 0, len(steps))
	for _, st := range steps {
		if st.Select != nil {
			eng.SetSelection(*st.Select)
			results = append(results, stepResult{Word: st.Word, Text: eng.Text()})
			continue
		}
		out, err := eng.Execute(*st.Command)
		if err != nil {
			return results, fmt.Errorf("%s: %w", st.Word, err)
		}
		results = append(results, stepResult{
			Word:      st.Word,
			Text:      out.Text,
			Changed:   out.Changed,
			Rejected:  out.Rejected,
			Cancelled: out.Cancelled,
			Changes:   out.Changes,
		})
	}
	return results, nil
}

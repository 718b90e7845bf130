// Package session runs host commands through the masked-edit pipeline.
//
// An Engine owns one masked field: the mask, the display text, the parsed
// tokens and the selection. Every command passes through the same phases:
//
//	Idle → Parsing → Overlaying|Editing → Validating → Applying → Idle
//
// Only one pass may be in flight. A hook that calls back into the engine
// while a pass is running gets ErrReentrant instead of recursing with
// half-applied state.
//
// Hooks receive a ProposedChange and answer with a Verdict: Proceed, possibly
// with a rewritten text of the same length, or Cancel. A cancel anywhere
// aborts the pass and leaves the engine exactly as it was.
//
//	eng, _ := session.New("00:00", "09:59", session.DefaultConfig())
//	eng.Customize(0, func(t *mask.Token) { t.MaxValue = decimal.NewFromInt(24) })
//	eng.Customize(2, func(t *mask.Token) { t.MaxValue = decimal.NewFromInt(60) })
//	eng.SetSelection(session.Selection{Start: 4})
//	out, _ := eng.Execute(session.Increment(decimal.NewFromInt(1), false))
//	// out.Text == "10:00"
package session

// Package editor implements up/down value editing of a single token.
//
// KeyUpDown picks one of three modes for the target token:
//
//   - Custom-value cycling, when the token has a CustomValues list. The
//     current text is looked up case-insensitively and the index moves by
//     one in the direction of the amount. Literal tokens rewrite the mask.
//   - By-digit cycling, when the token (or the default) asks for it or the
//     text is not a number. The character under the caret steps through the
//     allowed characters of its wildcard until the token stays valid.
//   - Numeric editing with carry. The amount is added to the token value;
//     an overflow wraps the token and carries one SmallIncrement into the
//     editable tokens on its left.
//
// Carry example with a "00:00" mask, hour MaxValue 24 and minute MaxValue 60:
//
//	res, _ := editor.KeyUpDown(tokens, tokens[2], "09:59", decimal.NewFromInt(1), false, opts)
//	// res.Text == "10:00"
//
// KeyUpDown never modifies the tokens it is given. Every token change is
// offered to Options.TokenChanging before anything is committed; a refusal
// cancels the whole edit.
package editor

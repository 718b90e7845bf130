// Package mask parses mask strings into token lists.
//
// A mask mixes four kinds of characters:
//   - Wildcards (0 9 # L ? & C A a): editable positions
//   - Split characters (default ':', '$', '/'): separators forming their own tokens
//   - Shift markers ('>', '<', '|'): zero-width upper/lower/no-case toggles
//   - Literals: anything else, or any character escaped with '\'
//
// Each maximal run of same-class characters becomes a Token. Tokens partition
// the display text: the first starts at 0, each one starts where the previous
// ended, and the last ends at the display length.
//
// # Usage Example
//
//	tokens, err := mask.Parse("00:00", "09:59", nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// tokens[0].Text == "09", tokens[1].Text == ":", tokens[2].Text == "59"
//
//	tokens[0].MaxValue = decimal.NewFromInt(24)
//	tokens[2].MaxValue = decimal.NewFromInt(60)
//
//	// Re-parsing keeps customizations positionally
//	tokens, err = mask.Parse("00:00", "10:00", nil, tokens)
//
// # Customizations
//
// MinValue, MaxValue, increments, carry settings, padding, custom values and
// fix modes are customizations. A fresh parse sets them to defaults; Reconcile
// copies every non-default customization from an older list by position.
//
// # Character Tables
//
// CycleSet and Accepts answer which characters a wildcard position allows.
// The cycling tables are built once at package init and are read-only, so
// they are safe to share between goroutines.
package mask

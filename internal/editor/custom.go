package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/muurk/maskedit/internal/mask"
	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// trimValue strips blanks and the pad character from both ends of s.
func trimValue(s string, padChar rune) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ' ' || (padChar != 0 && r == padChar)
	})
}

// CustomIndex returns the index of text in values, compared
// case-insensitively after trimming, or -1 when it is not present.
func CustomIndex(values []string, text string, padChar rune) int {
	want := fold.String(trimValue(text, padChar))
	for i, v := range values {
		if fold.String(trimValue(v, padChar)) == want {
			return i
		}
	}
	return -1
}

// cycleCustom moves the token one step through its custom values.
func cycleCustom(t *mask.Token, dir int, opts Options) (Change, bool) {
	values := t.CustomValues
	if len(values) == 0 || dir == 0 {
		return Change{}, false
	}

	idx := CustomIndex(values, t.Text, t.PadChar)
	var next int
	switch {
	case idx < 0 && dir > 0:
		next = 0
	case idx < 0:
		next = len(values) - 1
	default:
		next = idx + dir
		if next < 0 || next >= len(values) {
			if !opts.WrapAround {
				return Change{}, false
			}
			next = (next + len(values)) % len(values)
		}
	}

	value := values[next]
	if !t.IsLiteral {
		value = Fit(value, t.Length, t.PadRule, t.PadChar)
	} else if opts.Mask == "" {
		// a literal value can only be replaced through the mask
		return Change{}, false
	}
	return Change{Seq: t.SeqNo, Old: t.Text, New: value}, true
}

// Fit truncates or pads value to exactly n runes. PadLeft right-justifies;
// every other rule left-justifies. Padding uses padChar, or a space when it
// is unset.
func Fit(value string, n int, rule mask.PadRule, padChar rune) string {
	r := []rune(value)
	if len(r) >= n {
		return string(r[:n])
	}
	if padChar == 0 {
		padChar = ' '
	}
	fill := strings.Repeat(string(padChar), n-utf8.RuneCountInString(value))
	if rule == mask.PadLeft {
		return fill + value
	}
	return value + fill
}

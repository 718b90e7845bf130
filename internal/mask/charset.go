package mask

import (
	"strings"
	"unicode"
)

const (
	asciiDigits = "0123456789"
	asciiUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiLower  = "abcdefghijklmnopqrstuvwxyz"
)

type charsetKey struct {
	wildcard rune
	shift    CaseShift
}

// cycleSets holds the ordered characters each wildcard cycles through.
// Built once at init and never written afterwards.
var cycleSets = buildCycleSets()

func buildCycleSets() map[charsetKey]string {
	printable := make([]rune, 0, 95)
	for r := rune(0x20); r <= 0x7e; r++ {
		printable = append(printable, r)
	}

	sets := make(map[charsetKey]string)
	for _, shift := range []CaseShift{ShiftNone, ShiftUpper, ShiftLower} {
		letters := asciiUpper + asciiLower
		switch shift {
		case ShiftUpper:
			letters = asciiUpper
		case ShiftLower:
			letters = asciiLower
		}

		anyChar := strings.Map(func(r rune) rune {
			if shift == ShiftUpper && unicode.IsLower(r) {
				return -1
			}
			if shift == ShiftLower && unicode.IsUpper(r) {
				return -1
			}
			return r
		}, string(printable))

		sets[charsetKey{'0', shift}] = asciiDigits
		sets[charsetKey{'9', shift}] = asciiDigits
		sets[charsetKey{'#', shift}] = asciiDigits + "+-"
		sets[charsetKey{'L', shift}] = letters
		sets[charsetKey{'?', shift}] = letters
		sets[charsetKey{'A', shift}] = asciiDigits + letters
		sets[charsetKey{'a', shift}] = asciiDigits + letters
		sets[charsetKey{'&', shift}] = anyChar
		sets[charsetKey{'C', shift}] = anyChar
	}
	return sets
}

// CycleSet returns the ordered characters a wildcard position cycles
// through for the given case shift. It returns "" for non-wildcards.
func CycleSet(wildcard rune, shift CaseShift) string {
	return cycleSets[charsetKey{wildcard, shift}]
}

// IsOptional reports whether a wildcard position may be left blank.
func IsOptional(wildcard rune) bool {
	switch wildcard {
	case '9', '#', '?', 'C', 'a':
		return true
	}
	return false
}

// Accepts reports whether r may be typed into a wildcard position.
// Unlike CycleSet it accepts any Unicode letter.
func Accepts(wildcard rune, r rune) bool {
	switch wildcard {
	case '0':
		return r >= '0' && r <= '9'
	case '9':
		return (r >= '0' && r <= '9') || r == ' '
	case '#':
		return (r >= '0' && r <= '9') || r == ' ' || r == '+' || r == '-'
	case 'L':
		return unicode.IsLetter(r)
	case '?':
		return unicode.IsLetter(r) || r == ' '
	case 'A':
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case 'a':
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' '
	case '&':
		return unicode.IsPrint(r) && r != ' '
	case 'C':
		return unicode.IsPrint(r)
	}
	return false
}

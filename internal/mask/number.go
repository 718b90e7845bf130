package mask

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormat carries the separators used when reading and writing token
// values. It is passed explicitly instead of being read from a locale.
type NumberFormat struct {
	Decimal rune
	Group   rune
}

// DefaultNumberFormat uses '.' for decimals and ',' for grouping.
var DefaultNumberFormat = NumberFormat{Decimal: '.', Group: ','}

func (nf NumberFormat) orDefault() NumberFormat {
	if nf.Decimal == 0 {
		nf.Decimal = DefaultNumberFormat.Decimal
	}
	if nf.Group == 0 {
		nf.Group = DefaultNumberFormat.Group
	}
	return nf
}

// ZeroMask returns the token mask with every wildcard translated to '0'.
// Embedded separators are kept so formatted values line up with the mask.
func (t *Token) ZeroMask() string {
	return strings.Map(func(r rune) rune {
		if IsWildcard(r) {
			return '0'
		}
		return r
	}, t.Mask)
}

// decimalCut returns the rune offset of the last decimal separator in the
// mask, or -1 if the token has no fractional part.
func (t *Token) decimalCut() int {
	if t.IsLiteral {
		return -1
	}
	nf := t.NumberFormat()
	m := []rune(t.Mask)
	for i := len(m) - 1; i >= 0; i-- {
		if m[i] == nf.Decimal {
			return i
		}
	}
	return -1
}

// DecimalPlaces counts the mask characters after the last decimal separator.
func (t *Token) DecimalPlaces() int {
	cut := t.decimalCut()
	if cut < 0 {
		return 0
	}
	return len([]rune(t.Mask)) - cut - 1
}

// IntegerDigits counts the digit positions before the decimal separator.
// Literal tokens count every character.
func (t *Token) IntegerDigits() int {
	m := []rune(t.Mask)
	if t.IsLiteral {
		return len(m)
	}
	if cut := t.decimalCut(); cut >= 0 {
		m = m[:cut]
	}
	n := 0
	for _, r := range m {
		if IsWildcard(r) {
			n++
		}
	}
	return n
}

// MaxRepresentable is the largest value strictly below MaxValue that the
// token's decimal places can express.
func (t *Token) MaxRepresentable() decimal.Decimal {
	return t.MaxValue.Sub(decimal.New(1, -int32(t.DecimalPlaces())))
}

// InRange reports whether MinValue <= v < MaxValue.
func (t *Token) InRange(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(t.MinValue) && v.LessThan(t.MaxValue)
}

// ParseValue reads text as a number. Leading and trailing blanks (spaces,
// the pad character and prompt) are ignored; group separators are dropped.
// It reports false for anything that is not a plain decimal number.
func (t *Token) ParseValue(text string, prompt rune) (decimal.Decimal, bool) {
	nf := t.NumberFormat()
	blank := func(r rune) bool {
		return r == ' ' || (t.PadChar != 0 && r == t.PadChar) || (prompt != 0 && r == prompt)
	}
	trimmed := strings.TrimFunc(text, blank)
	if trimmed == "" {
		return decimal.Zero, false
	}

	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == nf.Decimal:
			b.WriteRune('.')
		case r == nf.Group:
		case (r == '-' || r == '+') && i == 0:
			b.WriteRune(r)
		default:
			return decimal.Zero, false
		}
	}

	v, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// FormatValue writes v into the token's zero mask: integer digits fill the
// '0' slots from the right, fraction digits from the left, separators stay in
// place. Digits that do not fit are prefixed, so an over-long result signals
// overflow to the caller.
func (t *Token) FormatValue(v decimal.Decimal) string {
	nf := t.NumberFormat()
	zm := []rune(t.ZeroMask())
	dp := t.DecimalPlaces()

	s := v.Abs().StringFixed(int32(dp))
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	intMask := zm
	var fracMask []rune
	if cut := t.decimalCut(); cut >= 0 {
		intMask, fracMask = zm[:cut], zm[cut+1:]
	}

	digits := []rune(intPart)
	di := len(digits) - 1
	out := make([]rune, len(intMask))
	for i := len(intMask) - 1; i >= 0; i-- {
		if intMask[i] != '0' {
			out[i] = intMask[i]
			continue
		}
		if di >= 0 {
			out[i] = digits[di]
			di--
		} else {
			out[i] = '0'
		}
	}
	res := string(digits[:di+1]) + string(out)

	if fracMask != nil {
		frac := []rune(fracPart)
		fi := 0
		var b strings.Builder
		b.WriteRune(nf.Decimal)
		for _, r := range fracMask {
			if r != '0' {
				b.WriteRune(r)
				continue
			}
			if fi < len(frac) {
				b.WriteRune(frac[fi])
				fi++
			} else {
				b.WriteRune('0')
			}
		}
		res += b.String()
	}

	if v.Round(int32(dp)).IsNegative() {
		if strings.HasPrefix(res, "0") && len(res) > 1 {
			res = "-" + res[1:]
		} else {
			res = "-" + res
		}
	}
	return res
}

package mask

import "slices"

// Reconcile returns a copy of fresh in which every customization field that
// was changed from its default on old[i] is copied onto fresh[i].
//
// Neither input is modified. Tokens past the end of old keep their defaults,
// which is how a caller forces a clean list: pass nil for old.
func Reconcile(old, fresh []*Token) []*Token {
	out := make([]*Token, len(fresh))
	for i, t := range fresh {
		c := t.Clone()
		if i < len(old) && old[i] != nil {
			copyCustomizations(c, old[i])
		}
		out[i] = c
	}
	return out
}

// copyCustomizations copies each customization of src that differs from
// src's own default onto dst.
func copyCustomizations(dst, src *Token) {
	def := defaultsFor(src)

	if !src.MinValue.Equal(def.MinValue) {
		dst.MinValue = src.MinValue
	}
	if !src.MaxValue.Equal(def.MaxValue) {
		dst.MaxValue = src.MaxValue
	}
	if !src.SmallIncrement.Equal(def.SmallIncrement) {
		dst.SmallIncrement = src.SmallIncrement
	}
	if !src.BigIncrement.Equal(def.BigIncrement) {
		dst.BigIncrement = src.BigIncrement
	}
	if src.CarryOver != def.CarryOver {
		dst.CarryOver = src.CarryOver
	}
	if src.CarryOverScope != def.CarryOverScope {
		dst.CarryOverScope = src.CarryOverScope
	}
	if src.ByDigit != nil {
		v := *src.ByDigit
		dst.ByDigit = &v
	}
	if src.PadChar != 0 {
		dst.PadChar = src.PadChar
	}
	if src.PadRule != PadDefault {
		dst.PadRule = src.PadRule
	}
	if src.ReverseUpDown {
		dst.ReverseUpDown = true
	}
	if src.CustomValues != nil {
		dst.CustomValues = slices.Clone(src.CustomValues)
	}
	if src.ValueTooSmallFixMode != nil {
		v := *src.ValueTooSmallFixMode
		dst.ValueTooSmallFixMode = &v
	}
	if src.ValueTooLargeFixMode != nil {
		v := *src.ValueTooLargeFixMode
		dst.ValueTooLargeFixMode = &v
	}
}

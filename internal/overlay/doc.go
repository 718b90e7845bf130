// Package overlay merges typed or pasted text into the editable segments of
// a masked display string.
//
// The current display text is cut into segments: each segment is a run of
// editable positions followed by the non-editable characters (its boundary)
// that separate it from the next segment. Apply distributes the input over
// those segments, breaking to the next segment whenever the input contains a
// boundary character or the current segment is full:
//
//	segs := overlay.SplitOn("00.00.00", []rune{'.'})
//	text, full := overlay.Apply("1..2", segs, mask.PadDefault, 0, false)
//	// text == "01.00.20", full == false
//
// Apply is a pure function. Feeding its own output back in with segments cut
// from that output returns the same text.
package overlay

package overlay

import (
	"slices"
	"strings"

	"github.com/muurk/maskedit/internal/mask"
)

// Segment is one editable span of the display text together with the
// non-editable characters that follow it.
type Segment struct {
	Text     string // current editable text
	Boundary string // separator text up to the next segment, "" for the last one
}

// Len returns the segment length in runes.
func (s Segment) Len() int {
	return len([]rune(s.Text))
}

// Split cuts text into segments. editable reports whether the rune at offset
// i is an editable position. Leading non-editable characters are returned as
// prefix; they belong to no segment.
func Split(text string, editable func(i int) bool) (prefix string, segments []Segment) {
	src := []rune(text)
	i := 0
	for i < len(src) && !editable(i) {
		i++
	}
	prefix = string(src[:i])

	for i < len(src) {
		start := i
		for i < len(src) && editable(i) {
			i++
		}
		bstart := i
		for i < len(src) && !editable(i) {
			i++
		}
		segments = append(segments, Segment{
			Text:     string(src[start:bstart]),
			Boundary: string(src[bstart:i]),
		})
	}
	return prefix, segments
}

// SplitOn cuts text into segments at every rune in boundaries.
func SplitOn(text string, boundaries []rune) []Segment {
	src := []rune(text)
	_, segs := Split(text, func(i int) bool {
		return !slices.Contains(boundaries, src[i])
	})
	return segs
}

// Join reassembles segments into display text.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
		b.WriteString(s.Boundary)
	}
	return b.String()
}

// boundarySet collects every rune that appears in a segment boundary.
func boundarySet(segments []Segment) map[rune]bool {
	set := make(map[rune]bool)
	for _, s := range segments {
		for _, r := range s.Boundary {
			set[r] = true
		}
	}
	return set
}

// runs distributes input over the segments.
func runs(input string, segments []Segment) [][]rune {
	out := make([][]rune, len(segments))
	if len(segments) == 0 {
		return out
	}
	bounds := boundarySet(segments)
	last := len(segments) - 1

	cur := 0
	filled := false // current run was closed by reaching its length
	for _, r := range input {
		if bounds[r] {
			if filled {
				filled = false
				continue
			}
			if cur < last {
				cur++
			}
			continue
		}
		if filled && cur < last {
			cur++
		}
		filled = false
		out[cur] = append(out[cur], r)
		if cur < last && len(out[cur]) >= segments[cur].Len() {
			filled = true
		}
	}
	return out
}

// Merged is the detailed outcome of Merge.
type Merged struct {
	Text string
	Full bool
	// End is the rune offset in Text just past the last character written
	// from the input. When that character completed its segment, End skips
	// the segment boundary too. End is 0 when no input was written.
	End int
}

// Apply merges input into segments and returns the reassembled text.
//
// A run shorter than its segment is padded according to rule; PadDefault
// pads the first segment on the left and the others on the right. Padding
// uses padChar when it is set and keepExisting is false, otherwise the
// segment's existing characters show through. A run longer than the last
// segment is truncated. Segments that receive no run keep their text, unless
// padChar is set and keepExisting is false, in which case they are blanked
// with padChar.
//
// full reports whether the input reached the end of the last segment.
func Apply(input string, segments []Segment, rule mask.PadRule, padChar rune, keepExisting bool) (result string, full bool) {
	m := Merge(input, segments, rule, padChar, keepExisting)
	return m.Text, m.Full
}

// Merge is Apply with the end offset of the written input.
func Merge(input string, segments []Segment, rule mask.PadRule, padChar rune, keepExisting bool) Merged {
	parts := runs(input, segments)
	usePad := padChar != 0 && !keepExisting

	var res Merged
	out := make([]Segment, len(segments))
	offset := 0
	for i, seg := range segments {
		out[i] = seg
		run := parts[i]
		existing := []rune(seg.Text)
		n := len(existing)
		bl := len([]rune(seg.Boundary))

		switch {
		case len(run) == 0:
			if usePad {
				out[i].Text = strings.Repeat(string(padChar), n)
			}
		default:
			if i == len(segments)-1 {
				res.Full = len(run) >= n
			}
			if len(run) > n {
				run = run[:n]
			}

			r := rule
			if r == mask.PadDefault {
				r = mask.PadRight
				if i == 0 {
					r = mask.PadLeft
				}
			}
			out[i].Text = pad(run, existing, r, padChar, usePad)

			res.End = offset + len(run)
			if r == mask.PadLeft || len(run) == n {
				res.End = offset + n + bl
			}
		}
		offset += n + bl
	}
	res.Text = Join(out)
	return res
}

func pad(run, existing []rune, rule mask.PadRule, padChar rune, usePad bool) string {
	missing := len(existing) - len(run)
	if missing <= 0 {
		return string(run)
	}
	if rule == mask.PadLeft {
		fill := existing[:missing]
		if usePad {
			fill = []rune(strings.Repeat(string(padChar), missing))
		}
		return string(fill) + string(run)
	}
	fill := existing[len(run):]
	if usePad {
		fill = []rune(strings.Repeat(string(padChar), missing))
	}
	return string(run) + string(fill)
}

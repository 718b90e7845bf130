package mask

import (
	"slices"
	"strings"
)

// Mask grammar characters
const (
	EscapeChar    = '\\'
	wildcardChars = "09#L?&CAa"
	digitChars    = "09#"
)

// DefaultSplitChars are the separators that form their own non-editable tokens.
var DefaultSplitChars = []rune{':', '$', '/'}

// IsWildcard reports whether r is an editable mask character.
func IsWildcard(r rune) bool {
	return strings.ContainsRune(wildcardChars, r)
}

// IsDigitWildcard reports whether r is a numeric mask character.
func IsDigitWildcard(r rune) bool {
	return strings.ContainsRune(digitChars, r)
}

// IsShiftMarker reports whether r is one of the zero-width case markers.
func IsShiftMarker(r rune) bool {
	return r == '>' || r == '<' || r == '|'
}

func markerShift(r rune) CaseShift {
	switch r {
	case '>':
		return ShiftUpper
	case '<':
		return ShiftLower
	default:
		return ShiftNone
	}
}

// charClass is the classification of one mask character
type charClass int

const (
	classLiteral charClass = iota
	classSplit
	classEdit
	classShift
)

// cell is one lexed mask character with its escape (if any) folded in
type cell struct {
	r        rune
	raw      string
	class    charClass
	shift    CaseShift
	rawStart int
	escaped  bool
}

// run is a group of cells that becomes a single token
type run struct {
	class charClass
	cells []cell
}

func (r *run) width() int {
	n := 0
	for _, c := range r.cells {
		if c.class != classShift {
			n++
		}
	}
	return n
}

// Parser turns mask strings into token lists.
type Parser struct {
	// SplitChars are the separator characters. Nil means DefaultSplitChars.
	SplitChars []rune

	// NumberFormat, when set, keeps its decimal and group separators inside a
	// digit run so that masks like "000.00" become a single decimal token.
	NumberFormat *NumberFormat
}

// NewParser returns a parser using the default split characters.
func NewParser() *Parser {
	return &Parser{SplitChars: slices.Clone(DefaultSplitChars)}
}

// Parse splits mask into tokens carrying the matching slices of displayText.
// When splitChars is nil the defaults are used. Customizations found on
// existing are carried over positionally (see Reconcile).
func Parse(mask, displayText string, splitChars []rune, existing []*Token) ([]*Token, error) {
	p := NewParser()
	if splitChars != nil {
		p.SplitChars = splitChars
	}
	return p.Parse(mask, displayText, existing)
}

// Parse splits mask into tokens carrying the matching slices of displayText.
func (p *Parser) Parse(mask, displayText string, existing []*Token) ([]*Token, error) {
	cells, err := p.lex(mask)
	if err != nil {
		return nil, err
	}

	text := []rune(displayText)
	if want := displayWidth(cells); want != len(text) {
		return nil, newLengthMismatch(mask, want, len(text))
	}

	runs := groupRuns(cells)
	tokens := make([]*Token, 0, len(runs))
	offset := 0
	for i, r := range runs {
		t := p.buildToken(i, r, text, offset)
		offset += t.Length
		tokens = append(tokens, t)
	}

	if existing != nil {
		return Reconcile(existing, tokens), nil
	}
	return tokens, nil
}

// DisplayLength returns the number of display runes a mask produces.
func (p *Parser) DisplayLength(mask string) (int, error) {
	cells, err := p.lex(mask)
	if err != nil {
		return 0, err
	}
	return displayWidth(cells), nil
}

// Template builds the initial display text for a mask: wildcard positions
// hold prompt, every other position holds its literal character.
func (p *Parser) Template(mask string, prompt rune) (string, error) {
	cells, err := p.lex(mask)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range cells {
		switch {
		case c.class == classShift:
			continue
		case c.class == classEdit && IsWildcard(c.r) && !c.escaped:
			b.WriteRune(prompt)
		default:
			b.WriteRune(c.r)
		}
	}
	return b.String(), nil
}

func (p *Parser) splitChars() []rune {
	if p.SplitChars == nil {
		return DefaultSplitChars
	}
	return p.SplitChars
}

// lex classifies every mask character, resolving escapes and tracking the
// running case shift.
func (p *Parser) lex(mask string) ([]cell, error) {
	src := []rune(mask)
	splits := p.splitChars()
	state := ShiftNone
	cells := make([]cell, 0, len(src))

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == EscapeChar {
			if i+1 >= len(src) {
				return nil, newTrailingEscape(mask, i)
			}
			cells = append(cells, cell{
				r:        src[i+1],
				raw:      string(src[i : i+2]),
				class:    classLiteral,
				shift:    state,
				rawStart: i,
				escaped:  true,
			})
			i++
			continue
		}

		cl := classLiteral
		switch {
		case slices.Contains(splits, c):
			cl = classSplit
		case IsWildcard(c):
			cl = classEdit
		case IsShiftMarker(c):
			cl = classShift
			state = markerShift(c)
		}
		cells = append(cells, cell{r: c, raw: string(c), class: cl, shift: state, rawStart: i})
	}

	if p.NumberFormat != nil {
		embedSeparators(cells, p.NumberFormat.orDefault())
	}
	return cells, nil
}

// embedSeparators reclassifies unescaped decimal and group separators that
// sit between two digit wildcards as part of the editable run.
func embedSeparators(cells []cell, nf NumberFormat) {
	for i, c := range cells {
		if c.class != classLiteral || c.escaped || (c.r != nf.Decimal && c.r != nf.Group) {
			continue
		}
		prev, next := neighbour(cells, i, -1), neighbour(cells, i, 1)
		if prev != nil && next != nil && prev.class == classEdit && next.class == classEdit &&
			IsDigitWildcard(prev.r) && IsDigitWildcard(next.r) {
			cells[i].class = classEdit
		}
	}
}

// neighbour finds the nearest non-marker cell in direction dir.
func neighbour(cells []cell, i, dir int) *cell {
	for j := i + dir; j >= 0 && j < len(cells); j += dir {
		if cells[j].class != classShift {
			return &cells[j]
		}
	}
	return nil
}

func displayWidth(cells []cell) int {
	n := 0
	for _, c := range cells {
		if c.class != classShift {
			n++
		}
	}
	return n
}

// groupRuns merges same-class cells into runs. Shift markers are zero-width:
// they join the run they fall in, or the run that follows them. Markers
// between two literal (or split) characters close the literal run and form a
// zero-width literal run of their own, since literal text is never shifted.
func groupRuns(cells []cell) []*run {
	var runs []*run
	var cur *run
	var pending []cell

	for _, c := range cells {
		if c.class == classShift {
			pending = append(pending, c)
			continue
		}
		switch {
		case cur == nil:
			cur = &run{class: c.class, cells: append(pending, c)}
		case c.class == cur.class && len(pending) > 0 && cur.class != classEdit:
			runs = append(runs, cur, &run{class: classLiteral, cells: pending})
			cur = &run{class: c.class, cells: []cell{c}}
		case c.class == cur.class:
			cur.cells = append(cur.cells, pending...)
			cur.cells = append(cur.cells, c)
		default:
			runs = append(runs, cur)
			cur = &run{class: c.class, cells: append(pending, c)}
		}
		pending = nil
	}

	switch {
	case cur != nil:
		cur.cells = append(cur.cells, pending...)
		runs = append(runs, cur)
	case len(pending) > 0:
		runs = append(runs, &run{class: classLiteral, cells: pending})
	}
	return runs
}

func (p *Parser) buildToken(seq int, r *run, text []rune, offset int) *Token {
	var maskB, rawB strings.Builder
	shifts := make([]CaseShift, 0, len(r.cells))
	for _, c := range r.cells {
		rawB.WriteString(c.raw)
		if c.class == classShift {
			continue
		}
		maskB.WriteRune(c.r)
		shifts = append(shifts, c.shift)
	}

	width := r.width()
	t := &Token{
		SeqNo:        seq,
		Text:         string(text[offset : offset+width]),
		StartIndex:   offset,
		Length:       width,
		IsLiteral:    r.class != classEdit,
		IsSplit:      r.class == classSplit,
		Mask:         maskB.String(),
		MaskRaw:      rawB.String(),
		MaskRawStart: r.cells[0].rawStart,
		Shifts:       shifts,
	}
	if p.NumberFormat != nil {
		t.numFmt = *p.NumberFormat
	}
	t.applyDefaults()
	return t
}

// EscapeLiteral escapes every rune of s so that the mask parser treats the
// result as literal text.
func EscapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(EscapeChar)
		b.WriteRune(r)
	}
	return b.String()
}

// splitMarkers separates leading and trailing unescaped shift markers from
// the body of a raw mask slice.
func splitMarkers(raw string) (lead, body, trail string) {
	src := []rune(raw)
	start := 0
	for start < len(src) && IsShiftMarker(src[start]) {
		start++
	}
	end := len(src)
	for end > start && IsShiftMarker(src[end-1]) && (end-2 < start || src[end-2] != EscapeChar) {
		end--
	}
	return string(src[:start]), string(src[start:end]), string(src[end:])
}

// ReplaceLiteral rewrites the mask so that the literal token t displays value.
// Leading and trailing shift markers of the token are preserved.
func ReplaceLiteral(mask string, t *Token, value string) string {
	src := []rune(mask)
	rawLen := len([]rune(t.MaskRaw))
	lead, _, trail := splitMarkers(t.MaskRaw)
	return string(src[:t.MaskRawStart]) + lead + EscapeLiteral(value) + trail + string(src[t.MaskRawStart+rawLen:])
}

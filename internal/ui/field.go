package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/maskedit/internal/mask"
)

// Field renders a masked field. Literal runs, editable characters and
// unfilled prompt positions get distinct styles; the selection is shown
// reversed, and a caret as a reversed cell at its position.
type Field struct {
	Text       string
	Tokens     []*mask.Token
	SelStart   int
	SelLength  int
	PromptChar rune
	ShowCaret  bool
}

// Render returns the styled field on a single line.
func (f Field) Render() string {
	text := []rune(f.Text)
	kinds := make([]lipgloss.Style, len(text))
	for i := range kinds {
		kinds[i] = FieldLiteralStyle
	}
	for _, t := range f.Tokens {
		if t.IsLiteral {
			continue
		}
		for i := t.StartIndex; i < t.End() && i < len(text); i++ {
			if text[i] == f.PromptChar {
				kinds[i] = FieldPromptStyle
			} else {
				kinds[i] = FieldEditableStyle
			}
		}
	}

	var b strings.Builder
	for i, r := range text {
		style := kinds[i]
		if f.selected(i) {
			style = style.Inherit(FieldSelectionStyle)
		}
		b.WriteString(style.Render(string(r)))
	}
	if f.ShowCaret && f.SelLength == 0 && f.SelStart >= len(text) {
		b.WriteString(FieldSelectionStyle.Render(" "))
	}
	return b.String()
}

func (f Field) selected(i int) bool {
	if f.SelLength == 0 {
		return f.ShowCaret && i == f.SelStart
	}
	return i >= f.SelStart && i < f.SelStart+f.SelLength
}

// String implements fmt.Stringer
func (f Field) String() string {
	return f.Render()
}

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/maskedit/internal/mask"
)

// TokenColumns are the headings of a token table, in order.
var TokenColumns = []string{"#", "Kind", "Mask", "Text", "Range", "Step", "Flags"}

var tokenColumnWidths = []int{4, 9, 12, 12, 16, 10, 20}

// TokenRow returns the cell values of one token row.
func TokenRow(t *mask.Token) []string {
	kind := "value"
	switch {
	case t.IsSplit:
		kind = "split"
	case t.IsLiteral:
		kind = "literal"
	case len(t.CustomValues) > 0:
		kind = "custom"
	}

	row := []string{strconv.Itoa(t.SeqNo), kind, t.MaskRaw, strconv.Quote(t.Text), "", "", ""}
	if t.IsLiteral {
		return row
	}
	row[4] = "[" + t.MinValue.String() + ", " + t.MaxValue.String() + ")"
	row[5] = t.SmallIncrement.String() + "/" + t.BigIncrement.String()

	var flags []string
	if t.CarryOver {
		flags = append(flags, "carry")
		if t.CarryOverScope > 0 {
			flags[len(flags)-1] += ":" + strconv.Itoa(t.CarryOverScope)
		}
	}
	if t.ByDigit != nil && *t.ByDigit {
		flags = append(flags, "digit")
	}
	if t.ReverseUpDown {
		flags = append(flags, "reverse")
	}
	if t.PadChar != 0 {
		flags = append(flags, "pad="+string(t.PadChar))
	}
	row[6] = strings.Join(flags, ",")
	return row
}

// RenderTokenTable renders one row per token under a heading line.
// Literal rows are muted.
func RenderTokenTable(tokens []*mask.Token) string {
	lines := []string{renderRow(TokenColumns, TableHeaderStyle)}
	for _, t := range tokens {
		style := TableCellStyle
		if t.IsLiteral {
			style = TableMutedCellStyle
		}
		lines = append(lines, renderRow(TokenRow(t), style))
	}
	return strings.Join(lines, "\n")
}

func renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = style.Width(tokenColumnWidths[i]).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

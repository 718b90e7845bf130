package ui

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prints a warning box and asks a yes/no question, reading the
// answer from in. Anything other than "y" or "yes" declines.
func (p *Printer) Confirm(title string, warnings []string, question string, in io.Reader) bool {
	lines := []string{"", WarningTitleStyle.Render("   " + WarningMarker + "  WARNING  ─  " + title), ""}
	for _, w := range warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render("   • "+w))
	}
	lines = append(lines, "")

	p.Println(BoxStyle(p.width, WarningColor).Render(strings.Join(lines, "\n")))
	p.Print(WarningTitleStyle.Render(question + " [y/N]: "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	p.Newline()
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	p.Println(lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	return false
}

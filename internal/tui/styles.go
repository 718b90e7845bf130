package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maskedit/internal/version"
)

// AppName is shown in the title bar.
const AppName = "MASKEDIT"

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	MinTerminalWidth = 60
	MaxChangeLog     = 5 // committed changes kept in the editor log
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0, 0, 0)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	FieldBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2).
			MarginTop(1)

	LogStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			PaddingLeft(2)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			PaddingLeft(2)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			PaddingLeft(2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			PaddingLeft(2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0, 0, 2)
)

// RenderTitle renders the title bar with the application name and version
func RenderTitle(text string) string {
	return TitleStyle.Render(AppName + " v" + AppVersion() + "  " + text)
}

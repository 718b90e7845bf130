package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/logging"
	"go.uber.org/zap"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenProfiles Screen = "profiles"
	ScreenEditor   Screen = "editor"
)

// AppModel is the top-level model that switches between the profile list
// and the editor.
type AppModel struct {
	CurrentScreen Screen
	Registry      *config.Registry

	ProfilesModel ProfilesModel
	EditorModel   EditorModel

	LastError error
	Width     int
	Height    int
}

// NewAppModel creates the application model. A non-empty profile opens the
// editor directly.
func NewAppModel(reg *config.Registry, profile string) AppModel {
	m := AppModel{
		CurrentScreen: ScreenProfiles,
		Registry:      reg,
		ProfilesModel: NewProfilesModel(reg),
	}
	if profile != "" {
		m = m.openEditor(profile)
	}
	return m
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles all messages and routes them to the current screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		p, _ := m.ProfilesModel.Update(msg)
		m.ProfilesModel = p.(ProfilesModel)
		if m.EditorModel.Engine != nil {
			e, _ := m.EditorModel.Update(msg)
			m.EditorModel = e.(EditorModel)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.CurrentScreen {
	case ScreenEditor:
		updated, cmd := m.EditorModel.Update(msg)
		m.EditorModel = updated.(EditorModel)
		if m.EditorModel.IsBackRequested() {
			m.CurrentScreen = ScreenProfiles
			m.EditorModel = EditorModel{}
			return m, nil
		}
		return m, cmd

	default:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "q" && !m.ProfilesModel.List.SettingFilter() {
			return m, tea.Quit
		}
		updated, cmd := m.ProfilesModel.Update(msg)
		m.ProfilesModel = updated.(ProfilesModel)
		if name := m.ProfilesModel.Selected; name != "" {
			m.ProfilesModel.Selected = ""
			return m.openEditor(name), nil
		}
		return m, cmd
	}
}

// openEditor builds an engine for the named profile and shows it.
func (m AppModel) openEditor(name string) AppModel {
	p, err := m.Registry.GetProfile(name)
	if err == nil {
		var editor EditorModel
		eng, engErr := p.NewEngine()
		if engErr == nil {
			editor = NewEditorModel(name, p.Description, eng)
			editor.Width, editor.Height = m.Width, m.Height
			editor.Help.Width = m.Width
			m.EditorModel = editor
			m.CurrentScreen = ScreenEditor
			m.LastError = nil
			return m
		}
		err = fmt.Errorf("profile %q: %w", name, engErr)
	}
	logging.Warn("cannot open profile", zap.String("profile", name), zap.Error(err))
	m.LastError = err
	return m
}

// View renders the current screen
func (m AppModel) View() string {
	if m.CurrentScreen == ScreenEditor {
		return m.EditorModel.View()
	}
	view := m.ProfilesModel.View()
	if m.LastError != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, ErrorStyle.Render("✗ "+m.LastError.Error()), view)
	}
	return view
}

// Run starts the full-screen program and blocks until the user quits.
func Run(reg *config.Registry, profile string) error {
	p := tea.NewProgram(NewAppModel(reg, profile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

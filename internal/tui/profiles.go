package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maskedit/internal/config"
)

// profileItem wraps a profile for use with bubbles/list
type profileItem struct {
	name    string
	profile *config.Profile
}

func (p profileItem) Title() string       { return p.name }
func (p profileItem) Description() string { return p.profile.Description + " • " + p.profile.Mask }
func (p profileItem) FilterValue() string { return p.name + " " + p.profile.Description }

// ProfilesModel lists the registry's profiles.
type ProfilesModel struct {
	List     list.Model
	Selected string
	Width    int
	Height   int
	Choose   key.Binding
}

// NewProfilesModel builds the list from reg, built-ins included.
func NewProfilesModel(reg *config.Registry) ProfilesModel {
	var items []list.Item
	for _, name := range reg.ProfileNames() {
		p, err := reg.GetProfile(name)
		if err != nil {
			continue
		}
		items = append(items, profileItem{name: name, profile: p})
	}

	l := list.New(items, list.NewDefaultDelegate(), MinTerminalWidth, 20)
	l.Title = "Profiles"
	l.Styles.Title = lipgloss.NewStyle().Foreground(TextColor).Background(PrimaryColor).Padding(0, 1)

	return ProfilesModel{
		List:   l,
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	}
}

// Init implements tea.Model
func (m ProfilesModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ProfilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.List.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		if m.List.FilterState() != list.Filtering && key.Matches(msg, m.Choose) {
			if item, ok := m.List.SelectedItem().(profileItem); ok {
				m.Selected = item.name
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ProfilesModel) View() string {
	return m.List.View()
}

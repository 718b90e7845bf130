package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/muurk/maskedit/internal/logging"
	"github.com/muurk/maskedit/internal/session"
	"github.com/muurk/maskedit/internal/ui"
	"go.uber.org/zap"
)

// Messages for clipboard operations
type pasteMsg struct {
	text string
	err  error
}

type copiedMsg struct {
	err error
}

// Clipboard access, replaced in tests.
var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

var (
	smallStep = decimal.NewFromInt(1)
	bigStep   = decimal.NewFromInt(10)
)

// EditorModel edits one field through a session engine.
type EditorModel struct {
	Profile     string
	Description string
	Engine      *session.Engine

	// Last command result
	Status    string
	LastError error
	Log       []string

	// Set-text prompt
	Prompting bool
	Input     textinput.Model

	ShowTokens bool
	Width      int
	Height     int

	backRequested bool

	Help       help.Model
	Keys       editorKeyMap
	PromptKeys promptKeyMap
}

// NewEditorModel creates an editor over eng.
func NewEditorModel(profile, description string, eng *session.Engine) EditorModel {
	input := textinput.New()
	input.Placeholder = eng.Text()
	input.CharLimit = utf8.RuneCountInString(eng.Text())
	input.Prompt = "text> "

	return EditorModel{
		Profile:     profile,
		Description: description,
		Engine:      eng,
		Input:       input,
		Help:        help.New(),
		Keys:        newEditorKeyMap(),
		PromptKeys:  newPromptKeyMap(),
	}
}

// Init implements tea.Model
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// IsBackRequested reports whether the user asked to leave the editor
func (m EditorModel) IsBackRequested() bool {
	return m.backRequested
}

// Update implements tea.Model
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case pasteMsg:
		if msg.err != nil {
			m.LastError = fmt.Errorf("read clipboard: %w", msg.err)
			return m, nil
		}
		return m.execute(session.Paste(msg.text)), nil

	case copiedMsg:
		if msg.err != nil {
			m.LastError = fmt.Errorf("write clipboard: %w", msg.err)
		} else {
			m.Status = "copied " + m.Engine.Text()
		}
		return m, nil

	case tea.KeyMsg:
		if m.Prompting {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.Engine.Selection()
	n := utf8.RuneCountInString(m.Engine.Text())

	switch {
	case key.Matches(msg, m.Keys.Back):
		m.backRequested = true
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil
	case key.Matches(msg, m.Keys.TokenTable):
		m.ShowTokens = !m.ShowTokens
		return m, nil
	case key.Matches(msg, m.Keys.SetText):
		m.Prompting = true
		m.Input.SetValue(m.Engine.Text())
		m.Input.CursorEnd()
		return m, m.Input.Focus()

	case key.Matches(msg, m.Keys.Left):
		m.moveCaret(sel.Start - 1)
	case key.Matches(msg, m.Keys.Right):
		if sel.Length > 0 {
			m.moveCaret(sel.End())
		} else {
			m.moveCaret(sel.Start + 1)
		}
	case key.Matches(msg, m.Keys.Home):
		m.moveCaret(0)
	case key.Matches(msg, m.Keys.End):
		m.moveCaret(n)
	case key.Matches(msg, m.Keys.SelLeft):
		if sel.Start > 0 {
			m.Engine.SetSelection(session.Selection{Start: sel.Start - 1, Length: sel.Length + 1})
		}
	case key.Matches(msg, m.Keys.SelRight):
		m.Engine.SetSelection(session.Selection{Start: sel.Start, Length: sel.Length + 1})

	case key.Matches(msg, m.Keys.NextToken):
		return m.selectAdjacent(1), nil
	case key.Matches(msg, m.Keys.PrevToken):
		return m.selectAdjacent(-1), nil

	case key.Matches(msg, m.Keys.Up):
		return m.execute(session.Increment(smallStep, true)), nil
	case key.Matches(msg, m.Keys.Down):
		return m.execute(session.Increment(smallStep.Neg(), true)), nil
	case key.Matches(msg, m.Keys.BigUp):
		return m.execute(session.Increment(bigStep, true)), nil
	case key.Matches(msg, m.Keys.BigDown):
		return m.execute(session.Increment(bigStep.Neg(), true)), nil
	case key.Matches(msg, m.Keys.DigitUp):
		return m.execute(session.CycleDigit(1)), nil
	case key.Matches(msg, m.Keys.DigitDown):
		return m.execute(session.CycleDigit(-1)), nil

	case key.Matches(msg, m.Keys.Backspace):
		return m.execute(session.Backspace()), nil
	case key.Matches(msg, m.Keys.Delete):
		return m.execute(session.Delete()), nil

	case key.Matches(msg, m.Keys.Paste):
		return m, func() tea.Msg {
			text, err := readClipboard()
			return pasteMsg{text: text, err: err}
		}
	case key.Matches(msg, m.Keys.Copy):
		text := m.Engine.Text()
		return m, func() tea.Msg {
			return copiedMsg{err: writeClipboard(text)}
		}

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		if msg.Paste {
			return m.execute(session.Paste(string(msg.Runes))), nil
		}
		for _, r := range msg.Runes {
			m = m.execute(session.TypeChar(r))
		}
		return m, nil
	}
	return m, nil
}

func (m *EditorModel) moveCaret(pos int) {
	m.Engine.SetSelection(session.Selection{Start: pos})
}

// selectAdjacent selects the next (dir > 0) or previous editable token,
// wrapping around the field.
func (m EditorModel) selectAdjacent(dir int) EditorModel {
	tokens := m.Engine.Tokens()
	start := m.Engine.Selection().Start

	var editable []int
	for _, t := range tokens {
		if t.CanEdit() {
			editable = append(editable, t.SeqNo)
		}
	}
	if len(editable) == 0 {
		return m
	}

	pick := -1
	if dir > 0 {
		for _, seq := range editable {
			if tokens[seq].StartIndex > start {
				pick = seq
				break
			}
		}
		if pick < 0 {
			pick = editable[0]
		}
	} else {
		for i := len(editable) - 1; i >= 0; i-- {
			if tokens[editable[i]].StartIndex < start {
				pick = editable[i]
				break
			}
		}
		if pick < 0 {
			pick = editable[len(editable)-1]
		}
	}
	return m.execute(session.SelectToken(pick))
}

func (m EditorModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.PromptKeys.Cancel):
		m.Prompting = false
		m.Input.Blur()
		return m, nil
	case key.Matches(msg, m.PromptKeys.Confirm):
		m.Prompting = false
		m.Input.Blur()
		all := session.Selection{Start: 0, Length: utf8.RuneCountInString(m.Engine.Text())}
		cmd := session.Paste(m.Input.Value())
		cmd.Selection = &all
		return m.execute(cmd), nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// execute runs cmd and records its outcome.
func (m EditorModel) execute(cmd session.Command) EditorModel {
	out, err := m.Engine.Execute(cmd)
	m.LastError = err
	if err != nil {
		logging.Debug("editor command failed", zap.String("profile", m.Profile), zap.Stringer("command", cmd), zap.Error(err))
		m.Status = ""
		return m
	}

	switch {
	case out.Cancelled:
		m.Status = "cancelled"
	case out.Rejected:
		m.Status = "rejected"
	case out.Changed && out.Full:
		m.Status = "complete"
	case out.Changed:
		m.Status = "changed"
	default:
		m.Status = ""
	}
	for _, c := range out.Changes {
		m.Log = append(m.Log, fmt.Sprintf("#%d %q → %q", c.Seq, c.Old, c.New))
	}
	if len(m.Log) > MaxChangeLog {
		m.Log = m.Log[len(m.Log)-MaxChangeLog:]
	}
	return m
}

// View implements tea.Model
func (m EditorModel) View() string {
	sel := m.Engine.Selection()
	field := ui.Field{
		Text:       m.Engine.Text(),
		Tokens:     m.Engine.Tokens(),
		SelStart:   sel.Start,
		SelLength:  sel.Length,
		PromptChar: m.Engine.Config().PromptChar,
		ShowCaret:  true,
	}

	sections := []string{
		RenderTitle(m.Profile),
		SubtitleStyle.Render(m.Description + "  mask " + m.Engine.Mask()),
		FieldBoxStyle.Render(field.Render()),
	}

	if m.Prompting {
		sections = append(sections, "", m.Input.View())
	}
	if m.ShowTokens {
		sections = append(sections, "", ui.RenderTokenTable(field.Tokens))
	}
	if len(m.Log) > 0 {
		sections = append(sections, "", LogStyle.Render(strings.Join(m.Log, "\n")))
	}

	switch {
	case m.LastError != nil:
		sections = append(sections, "", ErrorStyle.Render("✗ "+m.LastError.Error()))
	case m.Status == "rejected" || m.Status == "cancelled":
		sections = append(sections, "", StatusWarnStyle.Render(m.Status))
	case m.Status != "":
		sections = append(sections, "", StatusOKStyle.Render(m.Status))
	}

	var helpView string
	if m.Prompting {
		helpView = m.Help.View(m.PromptKeys)
	} else {
		helpView = m.Help.View(m.Keys)
	}
	sections = append(sections, HelpStyle.Render(helpView))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

package tui

import "github.com/charmbracelet/bubbles/key"

// editorKeyMap defines key bindings for the editor screen
type editorKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	SelLeft    key.Binding
	SelRight   key.Binding
	Home       key.Binding
	End        key.Binding
	NextToken  key.Binding
	PrevToken  key.Binding
	Up         key.Binding
	Down       key.Binding
	BigUp      key.Binding
	BigDown    key.Binding
	DigitUp    key.Binding
	DigitDown  key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	Paste      key.Binding
	Copy       key.Binding
	SetText    key.Binding
	TokenTable key.Binding
	Help       key.Binding
	Back       key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "move")),
		Right:      key.NewBinding(key.WithKeys("right")),
		SelLeft:    key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←/→", "select")),
		SelRight:   key.NewBinding(key.WithKeys("shift+right")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home/end", "jump")),
		End:        key.NewBinding(key.WithKeys("end")),
		NextToken:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next token")),
		PrevToken:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev token")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "step")),
		Down:       key.NewBinding(key.WithKeys("down")),
		BigUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "big step")),
		BigDown:    key.NewBinding(key.WithKeys("pgdown")),
		DigitUp:    key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑/↓", "cycle char")),
		DigitDown:  key.NewBinding(key.WithKeys("alt+down")),
		Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp/del", "clear")),
		Delete:     key.NewBinding(key.WithKeys("delete")),
		Paste:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		SetText:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "set text")),
		TokenTable: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "tokens")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.NextToken, k.Paste, k.Help, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.SelLeft, k.Home, k.NextToken, k.PrevToken},
		{k.Up, k.BigUp, k.DigitUp, k.Backspace},
		{k.Paste, k.Copy, k.SetText, k.TokenTable},
		{k.Help, k.Back},
	}
}

// promptKeyMap defines key bindings while the set-text prompt is open
type promptKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func newPromptKeyMap() promptKeyMap {
	return promptKeyMap{
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k promptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k promptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

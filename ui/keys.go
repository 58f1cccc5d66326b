package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the single-key bindings that work at any point of a key
// sequence. Everything else goes to the command dispatcher.
type KeyMap struct {
	// General
	Quit            key.Binding
	Refresh         key.Binding
	Clear           key.Binding
	Revset          key.Binding
	IgnoreImmutable key.Binding
	Help            key.Binding

	// Navigation
	Down        key.Binding
	Up          key.Binding
	NextSibling key.Binding
	PrevSibling key.Binding
	Parent      key.Binding
	WorkingCopy key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Fold        key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(" ", "ctrl+r"),
			key.WithHelp("spc", "refresh"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Revset: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "revset"),
		),
		IgnoreImmutable: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "ignore immutable"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextSibling: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next sibling"),
		),
		PrevSibling: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev sibling"),
		),
		Parent: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "parent"),
		),
		WorkingCopy: key.NewBinding(
			key.WithKeys("@"),
			key.WithHelp("@", "working copy"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		Fold: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "fold"),
		),
	}
}

// ShortHelp returns the bindings shown in the help bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fold, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all keybindings for the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.NextSibling, k.PrevSibling, k.Parent, k.WorkingCopy, k.PageDown, k.PageUp, k.Fold},
		{k.Refresh, k.Clear, k.Revset, k.IgnoreImmutable, k.Help, k.Quit},
	}
}

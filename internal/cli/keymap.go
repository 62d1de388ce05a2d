package cli

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the browse screen's keybinding registry. It is constructed
// once at startup and handed to the model, so bindings can be inspected or
// overridden in one place instead of living in a package-level table.
type KeyMap struct {
	Quit       key.Binding
	Tab        key.Binding
	Refresh    key.Binding
	Copy       key.Binding
	Cut        key.Binding
	Paste      key.Binding
	ClearClip  key.Binding
	Remove     key.Binding
	Categorize key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh from github"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy repo"),
		),
		Cut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cut repo"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste into folder"),
		),
		ClearClip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear clipboard"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove repo from folder"),
		),
		Categorize: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-categorize"),
		),
	}
}

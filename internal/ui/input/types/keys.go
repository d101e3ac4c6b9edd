package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the UI reacts to. It satisfies help.KeyMap.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pick   key.Binding
	Clear  key.Binding
	Retry  key.Binding
	Back   key.Binding
	Pager  key.Binding
	Help   key.Binding
	Quit   key.Binding
	ForceQ key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Pick: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "pick"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "left"),
			key.WithHelp("esc", "back"),
		),
		Pager: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in pager"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQ: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp is shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pick, k.Clear, k.Retry, k.Help, k.ForceQ}
}

// FullHelp is shown when help is expanded
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pick},
		{k.Clear, k.Retry},
		{k.Back, k.Pager},
		{k.Help, k.Quit, k.ForceQ},
	}
}

// DetailHelp returns the footer bindings for the detail pane
func (k KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Back, k.Pager, k.Retry, k.Quit}
}

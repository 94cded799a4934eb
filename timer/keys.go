package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	save       key.Binding
	cancel     key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/pause"),
	),
	save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop and save"),
	),
	cancel: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cancel"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.togglePlay, k.save, k.cancel, k.quit}
}

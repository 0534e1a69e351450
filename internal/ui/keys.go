package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the form's key bindings
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Pager  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel request"),
			key.WithDisabled(),
		),
		Pager: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open results"),
			key.WithDisabled(),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Cancel, k.Pager, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Submit, k.Cancel},
		{k.Pager, k.Quit},
	}
}

// sync enables the bindings that make sense while loading or not, and
// relabels submit to what pressing enter will do.
func (k *keyMap) sync(loading, hasResults bool) {
	k.Cancel.SetEnabled(loading)
	k.Pager.SetEnabled(!loading && hasResults)
	if loading {
		k.Submit.SetHelp("enter", "cancel")
	} else {
		k.Submit.SetHelp("enter", "submit")
	}
}

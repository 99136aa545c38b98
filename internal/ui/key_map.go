package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

var _ help.KeyMap = keyMap{}

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	submit key.Binding
	clear  key.Binding
	auth   key.Binding
	next   key.Binding
	prev   key.Binding
	up     key.Binding
	down   key.Binding
	left   key.Binding
	right  key.Binding
	choose key.Binding
	open   key.Binding
	back   key.Binding
	quit   key.Binding
	more   key.Binding

	focus focusArea // section whose bindings ShortHelp lists
}

func newKeyMap() keyMap {
	return keyMap{
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		auth:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "login/logout")),
		next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous section")),
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open artist")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to search")),
		quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		more:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "all keys")),
	}
}

// helpFor returns the bindings relevant to the focused section.
func (k keyMap) helpFor(f focusArea) []key.Binding {
	switch f {
	case focusSimilar:
		return []key.Binding{k.left, k.right, k.choose, k.open, k.next, k.back, k.more, k.quit}
	case focusTracks:
		return []key.Binding{k.up, k.down, k.choose, k.open, k.next, k.back, k.more, k.quit}
	default:
		return []key.Binding{k.submit, k.clear, k.auth, k.next, k.more, k.quit}
	}
}

// ShortHelp implements [help.KeyMap] for the focused section.
func (k keyMap) ShortHelp() []key.Binding {
	return k.helpFor(k.focus)
}

// FullHelp implements [help.KeyMap], grouping every binding by purpose.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.clear, k.auth},
		{k.next, k.prev, k.up, k.down, k.left, k.right},
		{k.choose, k.open, k.back},
		{k.more, k.quit},
	}
}

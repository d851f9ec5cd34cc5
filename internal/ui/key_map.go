package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	search   key.Binding
	add      key.Binding
	playNow  key.Binding
	playNext key.Binding
	skip     key.Binding
	clear    key.Binding
	yes      key.Binding
	no       key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add to queue")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		playNow:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "play now")),
		playNext: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "play next")),
		skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear queue")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.search, k.back},
		{k.playNow, k.playNext, k.skip, k.clear},
		{k.yes, k.no, k.quit},
	}
}

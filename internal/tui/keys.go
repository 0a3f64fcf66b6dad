package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of both screens. Some keys mean different things per screen.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	More     key.Binding
	Sort     key.Binding
	Category key.Binding
	Tag      key.Binding
	Search   key.Binding
	Clear    key.Binding
	Open     key.Binding

	Reply key.Binding
	Add   key.Binding
	Vote  key.Binding

	Submit  key.Binding
	Back    key.Binding
	Dismiss key.Binding
	Quit    key.Binding
	Force   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),

		More:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "load more")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "filter category")),
		Tag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "filter tag")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),

		Reply: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reply")),
		Add:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "comment")),
		Vote:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vote")),

		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return helpStyle.Render(out)
}

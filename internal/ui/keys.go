package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Apply    key.Binding
	Clear    key.Binding
	Submit   key.Binding
	Refresh  key.Binding
	Force    key.Binding
	Keywords key.Binding
	Theme    key.Binding
	Pipeline key.Binding
	Back     key.Binding
	Focus    key.Binding
	Dismiss  key.Binding
	Debug    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown")),
	Select:   key.NewBinding(key.WithKeys("enter")),
	Apply:    key.NewBinding(key.WithKeys("a")),
	Clear:    key.NewBinding(key.WithKeys("x")),
	Submit:   key.NewBinding(key.WithKeys("s", "ctrl+s")),
	Refresh:  key.NewBinding(key.WithKeys("r")),
	Force:    key.NewBinding(key.WithKeys("f")),
	Keywords: key.NewBinding(key.WithKeys("/")),
	Theme:    key.NewBinding(key.WithKeys("t")),
	Pipeline: key.NewBinding(key.WithKeys("p")),
	Back:     key.NewBinding(key.WithKeys("esc", "b")),
	Focus:    key.NewBinding(key.WithKeys("tab")),
	Dismiss:  key.NewBinding(key.WithKeys("z")),
	Debug:    key.NewBinding(key.WithKeys("D")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	GrabCard   key.Binding
	GrabColumn key.Binding
	NewCard    key.Binding
	EditCard   key.Binding
	DeleteCard key.Binding
	ToggleDone key.Binding
	NewColumn  key.Binding
	EditColumn key.Binding
	DelColumn  key.Binding
	NewBoard   key.Binding
	Rename     key.Binding
	DelBoard   key.Binding
	Boards     key.Binding
	NextBoard  key.Binding
	PrevBoard  key.Binding
	Search     key.Binding
	Background key.Binding
	Export     key.Binding
	Import     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/l", "column")),
		Right:      key.NewBinding(key.WithKeys("right", "l")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "card")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		GrabCard:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move card")),
		GrabColumn: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "move column")),
		NewCard:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		EditCard:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		DeleteCard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		ToggleDone: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		NewColumn:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new column")),
		EditColumn: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit column")),
		DelColumn:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete column")),
		NewBoard:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new board")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename board")),
		DelBoard:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete board")),
		Boards:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "boards")),
		NextBoard:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next board")),
		PrevBoard:  key.NewBinding(key.WithKeys("shift+tab")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find card")),
		Background: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "background")),
		Export:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "export")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Digit     key.Binding
	Operator  key.Binding
	Evaluate  key.Binding
	Clear     key.Binding
	Backspace key.Binding
	Copy      key.Binding
	History   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "enter number"),
		),
		Operator: key.NewBinding(
			key.WithKeys("+", "-", "*", "/"),
			key.WithHelp("+ - * /", "enter operator"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c", "C"),
			key.WithHelp("esc/c", "clear"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete last character"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy result"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.History, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Operator, k.Evaluate},
		{k.Clear, k.Backspace, k.Copy},
		{k.History, k.Help, k.Quit},
	}
}

// KeyReference renders the keyboard bindings as a markdown document
func KeyReference() string {
	b := acquireBuilder()
	b.WriteString("# calcschnell keys\n\n")
	b.WriteString("| Key | Action |\n")
	b.WriteString("| --- | --- |\n")
	for _, column := range defaultKeyMap().FullHelp() {
		for _, binding := range column {
			h := binding.Help()
			fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nClicking a keypad button with the left mouse button presses it ")
	b.WriteString("when mouse support is enabled (`\"mouse\": true` in the config file).\n")
	return builderString(b)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/codefionn/calcschnell/internal/calculator"
)

// Keypad geometry. Rendering and mouse hit testing both derive from these.
const (
	buttonInnerWidth = 5
	buttonWidth      = buttonInnerWidth + 2 // rounded border on both sides
	buttonHeight     = 3
	keypadWidth      = calculator.Columns * buttonWidth
)

func renderButton(label string) string {
	switch label {
	case calculator.KeyEvaluate:
		return evaluateButtonStyle.Render(label)
	case calculator.KeyClear:
		return clearButtonStyle.Render(label)
	case "+", "-", "*", "/":
		return operatorButtonStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func renderKeypad() string {
	b := acquireBuilder()
	buttons := make([]string, 0, calculator.Columns)
	for start := 0; start < len(calculator.Keys); start += calculator.Columns {
		end := min(start+calculator.Columns, len(calculator.Keys))
		buttons = buttons[:0]
		for _, label := range calculator.Keys[start:end] {
			buttons = append(buttons, renderButton(label))
		}
		if start > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return builderString(b)
}

// buttonAt maps a cell, relative to the top-left corner of the keypad, to the
// label of the button drawn there.
func buttonAt(x, y int) (string, bool) {
	if x < 0 || y < 0 || x >= keypadWidth {
		return "", false
	}
	index := (y/buttonHeight)*calculator.Columns + x/buttonWidth
	if index >= len(calculator.Keys) {
		return "", false
	}
	return calculator.Keys[index], true
}

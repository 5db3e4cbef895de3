package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(keypadWidth - 2).
			Align(lipgloss.Right)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(buttonInnerWidth).
			Align(lipgloss.Center)

	operatorButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("39"))

	evaluateButtonStyle = buttonStyle.
				Bold(true).
				Foreground(lipgloss.Color("42"))

	clearButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("208"))

	historyPanelStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	historyTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("244"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

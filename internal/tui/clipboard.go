package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/clipboard"
)

// ClipboardCopyMsg is sent when content is copied to clipboard
type ClipboardCopyMsg struct {
	Content string
	Success bool
	Error   string
}

// copyToClipboard copies content to system clipboard
func copyToClipboard(content string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.Init(); err != nil {
			return ClipboardCopyMsg{
				Success: false,
				Error:   fmt.Sprintf("clipboard unavailable: %v", err),
			}
		}

		clipboard.Write(clipboard.FmtText, []byte(content))

		return ClipboardCopyMsg{
			Content: content,
			Success: true,
		}
	}
}

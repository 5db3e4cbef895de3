// Package tui implements the terminal keypad front end of the calculator.
package tui

import (
	"context"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/codefionn/calcschnell/internal/calculator"
	"github.com/codefionn/calcschnell/internal/config"
	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/codefionn/calcschnell/internal/logger"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"
)

const appTitle = "calcschnell"

// historyExpressionWidth is the widest expression shown in the history panel
const historyExpressionWidth = 24

// HistorySource provides the entries of the history panel
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// Options configures the TUI model
type Options struct {
	Calculator *calculator.Calculator // defaults to calculator.New()
	History    HistorySource          // nil disables the history panel
	Logger     *logger.Logger
}

// ConfigReloadedMsg delivers a configuration that changed on disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

type statusExpiredMsg struct {
	seq int
}

// Model represents the TUI state
type Model struct {
	calc    *calculator.Calculator
	history HistorySource
	log     *logger.Logger

	keys keyMap
	help help.Model

	showHistory    bool
	historyEntries []history.Entry

	status    string
	statusErr bool
	statusSeq int

	width    int
	height   int
	quitting bool
}

// New creates a new TUI model
func New(opts Options) *Model {
	calc := opts.Calculator
	if calc == nil {
		calc = calculator.New()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Global().WithPrefix("tui")
	}

	m := &Model{
		calc:    calc,
		history: opts.History,
		log:     log,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.keys.History.SetEnabled(opts.History != nil)

	if width, height, ok := detectTerminalSize(); ok {
		m.width, m.height = width, height
		m.help.Width = width
	}

	return m
}

// NewProgram wraps m in a full-screen bubbletea program
func NewProgram(m *Model, mouse bool) *tea.Program {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(m, opts...)
}

// InteractiveTerminal reports whether both stdin and stdout are terminals
func InteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func detectTerminalSize() (int, int, bool) {
	candidates := []*os.File{os.Stdout, os.Stdin, os.Stderr}
	for _, f := range candidates {
		if f == nil {
			continue
		}
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		if width, height, err := term.GetSize(fd); err == nil && width > 0 && height > 0 {
			return width, height, true
		}
	}
	return 0, 0, false
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadHistory()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case ConfigReloadedMsg:
		if msg.Config == nil {
			return m, nil
		}
		m.calc.SetPrecision(msg.Config.Precision)
		m.log.Info("config reloaded, precision %d", msg.Config.Precision)
		return m, m.setStatus("Configuration reloaded", false)

	case ClipboardCopyMsg:
		if !msg.Success {
			m.log.Warn("copy failed: %s", msg.Error)
			return m, m.setStatus(msg.Error, true)
		}
		return m, m.setStatus("Copied "+msg.Content, false)

	case historyLoadedMsg:
		if msg.err != nil {
			m.log.Warn("failed to load history: %v", msg.err)
			return m, m.setStatus("History unavailable", true)
		}
		m.historyEntries = msg.entries
		return m, nil

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Digit), key.Matches(msg, m.keys.Operator):
		m.calc.Append(msg.String())
	case key.Matches(msg, m.keys.Evaluate):
		return m.evaluate()
	case key.Matches(msg, m.keys.Clear):
		m.calc.Clear()
	case key.Matches(msg, m.keys.Backspace):
		m.calc.Backspace()
	case key.Matches(msg, m.keys.Copy):
		return m.copyResult()
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m.loadHistory()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	label, ok := buttonAt(msg.X, msg.Y-m.keypadTop())
	if !ok {
		return nil
	}
	m.log.Debug("mouse press on %q", label)
	return m.press(label)
}

// press handles a keypad button the same way the keyboard does
func (m *Model) press(label string) tea.Cmd {
	if label == calculator.KeyEvaluate {
		return m.evaluate()
	}
	m.calc.Press(context.Background(), label)
	return nil
}

func (m *Model) evaluate() tea.Cmd {
	if _, ok := m.calc.Evaluate(context.Background()); !ok {
		return nil
	}
	return m.loadHistory()
}

func (m *Model) copyResult() tea.Cmd {
	last, ok := m.calc.Last()
	if !ok || last.Err != nil || !m.calc.ShowingResult() {
		return m.setStatus("Nothing to copy", true)
	}
	return copyToClipboard(last.Display)
}

func (m *Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	source := m.history
	return func() tea.Msg {
		entries, err := source.Recent(context.Background(), consts.HistoryPanelEntries)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(consts.StatusDisplayDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	body := renderKeypad()
	if m.showHistory {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderHistory())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTop(),
		body,
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

// renderTop renders everything above the keypad
func (m *Model) renderTop() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(appTitle),
		m.renderDisplay(),
	)
}

// keypadTop is the row the keypad starts on
func (m *Model) keypadTop() int {
	return lipgloss.Height(m.renderTop())
}

func (m *Model) renderDisplay() string {
	text := tail(m.calc.Display(), keypadWidth-2)
	if last, ok := m.calc.Last(); ok && last.Err != nil && m.calc.ShowingResult() {
		text = errorStyle.Render(text)
	}
	return displayStyle.Render(text)
}

func (m *Model) renderHistory() string {
	b := acquireBuilder()
	b.WriteString(historyTitleStyle.Render("History"))
	if len(m.historyEntries) == 0 {
		b.WriteByte('\n')
		b.WriteString(dimStyle.Render("no evaluations yet"))
	}
	for i, entry := range m.historyEntries {
		if i >= consts.HistoryPanelEntries {
			break
		}
		line := truncate.StringWithTail(entry.Expression, historyExpressionWidth, "…") + " = " + entry.Display
		b.WriteByte('\n')
		if entry.Failed() {
			b.WriteString(errorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
	}
	return historyPanelStyle.Render(builderString(b))
}

func (m *Model) renderStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return errorStyle.Render(m.status)
	default:
		return statusStyle.Render(m.status)
	}
}

// tail keeps the last width runes of s, marking the cut with an ellipsis
func tail(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return "…" + string(runes[len(runes)-width+1:])
}

// Package preview is a bubbletea view of a buffer rendered the way a
// concealing editor shows it, with keys to rewrap it in place.
package preview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/concealwrap/core"
	"github.com/ionut-t/concealwrap/highlighter"
	"github.com/mattn/go-runewidth"
)

const messageDuration = 3 * time.Second

// Clipboard receives the buffer content on copy.
type Clipboard interface {
	Write(text string) error
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

type Model struct {
	buffer         core.Buffer
	formatter      *core.Formatter
	concealer      core.ConcealService
	styler         *highlighter.Highlighter
	clipboard      Clipboard
	viewport       viewport.Model
	width          int
	height         int
	theme          Theme
	mode           core.Mode
	showConcealed  bool
	language       string
	file           string
	message        string
	err            error
	clearMsgCancel context.CancelFunc
}

type ErrorMsg struct {
	Error error
}

// SaveMsg asks the host to write Content to Path.
type SaveMsg struct {
	Path    string
	Content string
}

type clearMsg struct{}

// New builds a preview of the formatter's buffer. The theme is a chroma
// style name used for token colours.
func New(formatter *core.Formatter, language, theme, file string, width, height int) Model {
	m := Model{
		buffer:    formatter.Buffer,
		formatter: formatter,
		concealer: formatter.Concealer,
		styler:    highlighter.New(language, theme, formatter.Buffer),
		clipboard: &clipboardImpl{},
		viewport:  viewport.New(width, max(1, height-2)),
		theme:     DefaultTheme,
		mode:      core.NormalMode,
		language:  language,
		file:      file,
	}
	m.SetSize(width, height)
	m.refresh()
	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)
}

// WithTheme allows setting a custom theme for the preview.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	m.refresh()
}

func (m *Model) WithClipboard(c Clipboard) {
	m.clipboard = c
}

func (m *Model) Mode() core.Mode {
	return m.mode
}

// DispatchMessage shows message in the command line for duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError shows err in the command line for duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			m.refresh()
			return m, cmd
		}

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case ErrorMsg:
		return m, m.DispatchError(msg.Error, messageDuration)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit, true

	case "f":
		return m.format(), true

	case "+", "=":
		m.formatter.Width = m.textWidth() + 1
		return nil, true

	case "-":
		m.formatter.Width = max(1, m.textWidth()-1)
		return nil, true

	case "i":
		if m.mode.IsInteractive() {
			m.mode = core.NormalMode
		} else {
			m.mode = core.InsertMode
		}
		return nil, true

	case "c":
		m.showConcealed = !m.showConcealed
		return nil, true

	case "y":
		content := m.buffer.GetCurrentContent()
		if err := m.clipboard.Write(content); err != nil {
			return m.DispatchError(err, messageDuration), true
		}
		return m.DispatchMessage(fmt.Sprintf("%d bytes copied", len(content)), messageDuration), true

	case "s":
		content := m.buffer.GetCurrentContent()
		m.buffer.SaveContent()
		path := m.file
		return func() tea.Msg {
			return SaveMsg{Path: path, Content: content}
		}, true
	}
	return nil, false
}

func (m *Model) format() tea.Cmd {
	res, err := m.formatter.Format(core.Request{
		Start: 0,
		Count: m.buffer.LineCount(),
		Mode:  m.mode,
	})
	if err != nil {
		return m.DispatchError(err, messageDuration)
	}
	if res.Status == core.StatusDeferred {
		return m.DispatchError(fmt.Errorf("format deferred: %w", res.Reason), messageDuration)
	}

	failed := len(res.Failed())
	message := fmt.Sprintf("%d groups formatted, %+d lines", len(res.Groups)-failed, res.Delta)
	if failed > 0 {
		message += fmt.Sprintf(", %d left unwrapped", failed)
	}
	return m.DispatchMessage(message, messageDuration)
}

func (m *Model) textWidth() int {
	if m.formatter.Width <= 0 {
		return core.DefaultWidth
	}
	return m.formatter.Width
}

func (m Model) View() string {
	content := m.viewport.View()

	var commandLine string
	if m.message != "" {
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	}
	if m.err != nil {
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	}

	statusLine := m.getStatusLine()
	if paddingWidth := m.width - lipgloss.Width(statusLine); paddingWidth > 0 {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}
	if paddingWidth := m.width - lipgloss.Width(commandLine); paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	var badge string
	if m.mode.IsInteractive() {
		badge = m.theme.InsertModeStyle.Render(" INSERT ")
	} else {
		badge = m.theme.NormalModeStyle.Render(" NORMAL ")
	}

	concealState := "hidden"
	if m.showConcealed {
		concealState = "shown"
	}

	name := m.file
	if name == "" {
		name = "[stdin]"
	}
	if m.buffer.IsModified() {
		name += " [+]"
	}

	language := m.language
	if language == "" {
		language = "plain"
	}

	info := fmt.Sprintf(" %s  %s  tw=%d  markup %s ", name, language, m.textWidth(), concealState)
	info = runewidth.Truncate(info, max(0, m.width-lipgloss.Width(badge)), "…")

	return badge + m.theme.StatusLineStyle.Render(info)
}

package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/concealwrap/core"
	"github.com/ionut-t/concealwrap/highlighter"
	"github.com/ionut-t/concealwrap/internal/logging"
	"github.com/ionut-t/concealwrap/preview"
)

const messageDuration = 3 * time.Second

type PreviewCmd struct {
	File  string `arg:"" help:"File to preview" type:"existingfile"`
	Width int    `name:"width" short:"W" help:"Text width (overrides config)"`
	Lang  string `name:"lang" short:"l" help:"Language: norg or markdown (detected when empty)"`
}

// previewModel hosts the preview and writes the file when it asks to save.
type previewModel struct {
	preview preview.Model
}

func (m previewModel) Init() tea.Cmd {
	return m.preview.Init()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		msg.Width -= 4
		msg.Height -= 2
		return m.forward(msg)

	case preview.SaveMsg:
		if err := writeFile(msg.Path, []byte(msg.Content+"\n")); err != nil {
			return m, m.preview.DispatchError(err, messageDuration)
		}
		return m, m.preview.DispatchMessage(fmt.Sprintf("file saved to %s", msg.Path), messageDuration)
	}
	return m.forward(msg)
}

func (m previewModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.preview.Update(msg)
	m.preview = updated.(preview.Model)
	return m, cmd
}

func (m previewModel) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.preview.View())
}

func (c *PreviewCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	language := c.Lang
	if language == "" {
		language = cfg.Language
	}
	if language == "" {
		language = highlighter.DetectLanguage(c.File, content)
	}

	buf := core.NewBufferFromBytes(content)
	f := core.NewFormatter(buf, highlighter.NewConcealer(language, buf))
	f.Classifier = highlighter.ClassifierFor(language)
	cfg.Apply(f)
	// Log records would draw over the alternate screen.
	f.Logger = logging.Discard()
	if c.Width > 0 {
		f.Width = c.Width
	}

	m := previewModel{preview: preview.New(f, language, cfg.Theme, c.File, 80, 20)}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

package preview

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/concealwrap/core"
	"github.com/ionut-t/concealwrap/highlighter"
	"github.com/rivo/uniseg"
)

// renderLine draws one buffer row with its concealed runes hidden, or dimmed
// when showConcealed is set. It also returns the display width of the runes
// that stay visible.
func (m *Model) renderLine(row int) (string, int) {
	line := m.buffer.Line(row)

	var concealed core.ConcealMap
	if m.concealer != nil && m.concealer.Available() {
		if ranges, err := m.concealer.ConcealedRanges(row); err == nil {
			concealed = core.NewConcealMap(line, ranges)
		}
	}

	var tokens []chroma.Token
	if m.styler != nil {
		tokens, _ = m.styler.Tokenize(line)
	}
	if len(tokens) == 0 {
		tokens = []chroma.Token{{Type: chroma.Text, Value: line}}
	}

	var out, visible strings.Builder
	for _, pos := range highlighter.GetTokenPositions(tokens) {
		style := m.tokenStyle(pos.Token.Type)
		col := pos.StartCol

		var run strings.Builder
		for _, r := range pos.Token.Value {
			hidden := concealed.Concealed(col)
			col++
			if !hidden {
				run.WriteRune(r)
				visible.WriteRune(r)
				continue
			}
			out.WriteString(render(style, run.String()))
			run.Reset()
			if m.showConcealed {
				out.WriteString(m.theme.ConcealedStyle.Render(string(r)))
			}
		}
		out.WriteString(render(style, run.String()))
	}

	return out.String(), uniseg.StringWidth(visible.String())
}

func (m *Model) tokenStyle(t chroma.TokenType) lipgloss.Style {
	if m.styler == nil {
		return lipgloss.NewStyle()
	}
	return m.styler.GetStyleForToken(t)
}

func render(style lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return style.Render(s)
}

// refresh rebuilds the viewport content. Rows wider than the text width get
// their line number flagged.
func (m *Model) refresh() {
	width := m.formatter.Width
	if width <= 0 {
		width = core.DefaultWidth
	}

	rows := make([]string, 0, m.buffer.LineCount())
	for row := range m.buffer.LineCount() {
		text, visibleWidth := m.renderLine(row)

		numberStyle := m.theme.LineNumberStyle
		if visibleWidth > width {
			numberStyle = m.theme.OverflowLineNumberStyle
		}
		rows = append(rows, numberStyle.Render(strconv.Itoa(row+1))+" "+text)
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

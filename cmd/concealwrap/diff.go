package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	insertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// lineDiff renders a whole-file line diff of before and after. It returns ""
// when nothing changed.
func lineDiff(name, before, after string, color bool) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	rBefore, rAfter, lineArray := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(rBefore, rAfter, false))

	paint := func(style lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return style.Render(s)
	}

	var sb strings.Builder
	sb.WriteString(paint(headerStyle, "--- "+name) + "\n")
	sb.WriteString(paint(headerStyle, "+++ "+name) + "\n")

	for _, d := range diffs {
		for _, r := range d.Text {
			idx := int(r)
			if idx < 0 || idx >= len(lineArray) {
				continue
			}
			line := strings.TrimSuffix(lineArray[idx], "\n")
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				sb.WriteString(" " + line + "\n")
			case diffmatchpatch.DiffDelete:
				sb.WriteString(paint(deletedStyle, "-"+line) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(paint(insertedStyle, "+"+line) + "\n")
			}
		}
	}
	return sb.String()
}

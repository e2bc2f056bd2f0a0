package core

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

const (
	// DefaultWidth is used when no positive width is configured.
	DefaultWidth = 80
	// MinVisibleWidth is the floor for the per-line budget under deep indentation.
	MinVisibleWidth = 5
)

// Budget bounds the visible width of wrapped lines.
type Budget struct {
	Width              int // target column of a full line, indent included
	FirstIndent        int // indent of the first produced line
	ContinuationIndent int // indent of every later line, before the list-prefix offset
}

// VisibleWidth returns how many visible runes fit on a line indented by indent.
func (b Budget) VisibleWidth(indent int) int {
	width := b.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return max(width-indent, min(width, MinVisibleWidth))
}

// Wrapper splits logical lines into output lines.
type Wrapper struct {
	Classifier *Classifier // detects the list prefix continuation lines align under
	Breaks     BreakSet
}

// Wrap wraps line with Norg list detection.
func Wrap(line string, concealed ConcealMap, budget Budget, breaks BreakSet) []string {
	w := Wrapper{Classifier: Norg, Breaks: breaks}
	return w.Wrap(line, concealed, budget)
}

// Wrap splits line into indented output lines whose visible (non-concealed)
// width stays within budget. It prefers the last whitespace or break
// character that fits and falls back to a hard split inside a token that is
// wider than the budget. An empty line is returned unchanged.
func (w Wrapper) Wrap(line string, concealed ConcealMap, budget Budget) []string {
	if line == "" {
		return []string{line}
	}

	classifier := w.Classifier
	if classifier == nil {
		classifier = Norg
	}

	runes := []rune(line)
	n := len(runes)
	contIndent := budget.ContinuationIndent + classifier.ListPrefix(line)

	// Leading whitespace never becomes a line of its own.
	pos := 0
	for pos < n && unicode.IsSpace(runes[pos]) {
		pos++
	}
	if pos == n {
		return []string{""}
	}

	var out []string
	for pos < n {
		indent := budget.FirstIndent
		if len(out) > 0 {
			indent = contIndent
		}
		width := budget.VisibleWidth(indent)

		end := pos
		var breaks []int
		visible := 0
		for end < n {
			if !concealed.Concealed(end) {
				visible++
			}
			if visible > width {
				// Everything before a space that overflows still fits.
				if unicode.IsSpace(runes[end]) {
					breaks = append(breaks, end)
				}
				break
			}
			if end > pos && w.Breaks.IsBreak(runes[end]) {
				breaks = append(breaks, end)
			}
			end++
		}

		var split int // inclusive
		switch {
		case end >= n:
			split = n - 1
		case len(breaks) > 0:
			split = pickBreak(classifier, runes, breaks)
		default:
			split = graphemeBoundary(runes, pos, end) - 1
		}

		out = append(out, indentLine(strings.TrimSpace(string(runes[pos:split+1])), indent))

		pos = split + 1
		for pos < n && unicode.IsSpace(runes[pos]) {
			pos++
		}
	}

	return out
}

// pickBreak returns the last break after which the next line would not open
// with a header or list marker. When every break does, the last one wins.
func pickBreak(c *Classifier, runes []rune, breaks []int) int {
	for i := len(breaks) - 1; i >= 0; i-- {
		if !opensStructure(c, runes, breaks[i]+1) {
			return breaks[i]
		}
	}
	return breaks[len(breaks)-1]
}

func opensStructure(c *Classifier, runes []rune, from int) bool {
	for from < len(runes) && unicode.IsSpace(runes[from]) {
		from++
	}
	if from == len(runes) {
		return false
	}
	return c.Classify(string(runes[from:])).IsStructural()
}

func indentLine(text string, indent int) string {
	if text == "" || indent <= 0 {
		return text
	}
	return strings.Repeat(" ", indent) + text
}

// graphemeBoundary returns the last grapheme cluster boundary in (pos, end],
// or end when the first cluster alone is longer than the span.
func graphemeBoundary(runes []rune, pos, end int) int {
	g := uniseg.NewGraphemes(string(runes[pos:]))
	best := pos
	off := pos
	for g.Next() {
		off += len(g.Runes())
		if off > end {
			break
		}
		best = off
	}
	if best <= pos {
		return end
	}
	return best
}

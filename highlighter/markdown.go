package highlighter

import (
	"bytes"
	"sort"

	"github.com/ionut-t/concealwrap/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownConcealer conceals CommonMark inline delimiters: emphasis markers,
// code span backticks, and the brackets and destinations of links and images.
type MarkdownConcealer struct {
	lines LineSource
	md    goldmark.Markdown
}

func NewMarkdownConcealer(lines LineSource) *MarkdownConcealer {
	return &MarkdownConcealer{lines: lines, md: goldmark.New()}
}

func (m *MarkdownConcealer) Available() bool {
	return m.lines != nil
}

func (m *MarkdownConcealer) ConcealedRanges(row int) ([]core.Range, error) {
	if m.lines == nil {
		return nil, core.ErrNoSyntaxTree
	}
	return m.ConcealedRangesForLine(m.lines.Line(row)), nil
}

// ConcealedRangesForLine parses line on its own and returns the byte ranges
// of its inline delimiters in ascending order.
func (m *MarkdownConcealer) ConcealedRangesForLine(line string) []core.Range {
	if line == "" {
		return nil
	}
	src := []byte(line)
	doc := m.md.Parser().Parse(text.NewReader(src))

	var ranges []core.Range
	extent(doc, src, &ranges)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	return ranges
}

// extent returns the source span of n including its delimiters, appending the
// delimiter ranges it finds to out.
func extent(n ast.Node, src []byte, out *[]core.Range) (start, stop int, ok bool) {
	if t, isText := n.(*ast.Text); isText {
		return t.Segment.Start, t.Segment.Stop, true
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s, e, found := extent(c, src, out)
		if !found {
			continue
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > stop {
			stop = e
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}

	switch node := n.(type) {
	case *ast.Emphasis:
		l := node.Level
		if start-l >= 0 && stop+l <= len(src) && isDelimiterRun(src[start-l:start]) && isDelimiterRun(src[stop:stop+l]) {
			*out = append(*out, core.Range{Start: start - l, End: start}, core.Range{Start: stop, End: stop + l})
			start, stop = start-l, stop+l
		}
	case *ast.CodeSpan:
		open, end := backticks(src, start, stop)
		if open < start && end > stop {
			*out = append(*out, core.Range{Start: open, End: start}, core.Range{Start: stop, End: end})
			start, stop = open, end
		}
	case *ast.Link:
		if end, found := linkTail(src, start, stop, 1); found {
			*out = append(*out, core.Range{Start: start - 1, End: start}, core.Range{Start: stop, End: end})
			start, stop = start-1, end
		}
	case *ast.Image:
		if end, found := linkTail(src, start, stop, 2); found && src[start-2] == '!' {
			*out = append(*out, core.Range{Start: start - 2, End: start}, core.Range{Start: stop, End: end})
			start, stop = start-2, end
		}
	}
	return start, stop, true
}

func isDelimiterRun(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return bytes.Count(b, b[:1]) == len(b) && (b[0] == '*' || b[0] == '_')
}

// backticks widens [start, stop) over the surrounding backtick fences and the
// single padding space CommonMark strips from code spans.
func backticks(src []byte, start, stop int) (int, int) {
	open := start
	if open > 1 && src[open-1] == ' ' && src[open-2] == '`' {
		open--
	}
	for open > 0 && src[open-1] == '`' {
		open--
	}

	end := stop
	if end+1 < len(src) && src[end] == ' ' && src[end+1] == '`' {
		end++
	}
	for end < len(src) && src[end] == '`' {
		end++
	}
	return open, end
}

// linkTail checks for "[" before the label (prefix bytes long, counting a
// leading "!" for images) and returns the end of "](destination)" after it.
func linkTail(src []byte, start, stop, prefix int) (int, bool) {
	if start-prefix < 0 || src[start-1] != '[' || stop >= len(src) || src[stop] != ']' {
		return 0, false
	}
	i := stop + 1
	if i >= len(src) || src[i] != '(' {
		return 0, false
	}
	depth := 0
	for ; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

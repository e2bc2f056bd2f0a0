package core

import (
	"strings"
	"unicode"
)

// DefaultTabStop is the tab width used to measure leading whitespace.
const DefaultTabStop = 4

// IndentRequest describes the joined line an indent is asked for. Original
// holds the raw lines the group occupied before it was joined.
type IndentRequest struct {
	Row      int
	Line     string
	Original []string
}

// Indenter assigns the number of leading visible columns to a joined line.
type Indenter interface {
	IndentFor(req IndentRequest) (int, error)
}

// IndentFunc adapts a function to the Indenter interface.
type IndentFunc func(req IndentRequest) (int, error)

func (f IndentFunc) IndentFor(req IndentRequest) (int, error) {
	return f(req)
}

// FixedIndent indents every line by the same amount.
type FixedIndent int

func (n FixedIndent) IndentFor(IndentRequest) (int, error) {
	return max(int(n), 0), nil
}

// OriginalIndent keeps the indentation the group's first non-blank line had
// before it was joined.
type OriginalIndent struct {
	TabStop int
}

func (o OriginalIndent) IndentFor(req IndentRequest) (int, error) {
	for _, line := range req.Original {
		if strings.TrimSpace(line) != "" {
			return LeadingWidth(line, o.TabStop), nil
		}
	}
	return 0, nil
}

// AutoIndent copies the indentation of the nearest non-blank row above the
// joined line, the way an editor's autoindent does.
type AutoIndent struct {
	Buffer  Buffer
	TabStop int
}

func (a AutoIndent) IndentFor(req IndentRequest) (int, error) {
	if a.Buffer == nil {
		return 0, ErrIndentFailed
	}
	for row := req.Row - 1; row >= 0; row-- {
		line := a.Buffer.Line(row)
		if strings.TrimSpace(line) == "" {
			continue
		}
		return LeadingWidth(line, a.TabStop), nil
	}
	return 0, nil
}

// LeadingWidth measures the leading whitespace of line in columns, expanding
// tabs to tabStop (DefaultTabStop when not positive).
func LeadingWidth(line string, tabStop int) int {
	if tabStop <= 0 {
		tabStop = DefaultTabStop
	}
	col := 0
	for _, r := range line {
		switch {
		case r == '\t':
			col += tabStop - col%tabStop
		case unicode.IsSpace(r):
			col++
		default:
			return col
		}
	}
	return col
}

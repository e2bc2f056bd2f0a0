package core

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LineType is the structural class of a single raw line.
type LineType int

const (
	Unknown LineType = iota
	Header
	ListItem
	Blank
	Text
)

func (t LineType) String() string {
	switch t {
	case Header:
		return "header"
	case ListItem:
		return "list-item"
	case Blank:
		return "blank"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// IsStructural reports whether lines of this type must never be merged into
// surrounding prose.
func (t LineType) IsStructural() bool {
	return t == Header || t == ListItem
}

// Classifier recognises header and list-item lines by their leading markers.
type Classifier struct {
	header *regexp.Regexp
	list   []*regexp.Regexp
}

var (
	// Norg uses '*' for headings and '-' / '~' for unordered and ordered lists.
	Norg = NewClassifier("*", "-~")
	// Markdown uses '#' for headings and '-', '+', '*' for bullets. Numbered
	// items ("1." or "1)") and blockquote lines also start their own run.
	Markdown = NewClassifier("#", "-+*").WithListPatterns(
		`^\s*\d{1,9}[.)]\s+`,
		`^\s*(?:>\s*)+`,
	)
)

// NewClassifier builds a classifier from the given marker alphabets.
func NewClassifier(headerMarkers, listMarkers string) *Classifier {
	return &Classifier{
		header: regexp.MustCompile(`^\s*[` + charClass(headerMarkers) + `]+\s`),
		list:   []*regexp.Regexp{regexp.MustCompile(`^\s*[` + charClass(listMarkers) + `]+\s+`)},
	}
}

// WithListPatterns returns a copy of c that also treats lines matching any of
// patterns as list items. Each pattern must be anchored at the line start; the
// match length is the continuation prefix.
func (c *Classifier) WithListPatterns(patterns ...string) *Classifier {
	out := &Classifier{header: c.header, list: append([]*regexp.Regexp(nil), c.list...)}
	for _, p := range patterns {
		out.list = append(out.list, regexp.MustCompile(p))
	}
	return out
}

// charClass escapes markers for use inside a bracket expression.
func charClass(markers string) string {
	var sb strings.Builder
	for _, r := range markers {
		switch r {
		case '\\', ']', '[', '^', '-':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Classify classifies line using the Norg markers.
func Classify(line string) LineType {
	return Norg.Classify(line)
}

// Classify checks Header first, then ListItem, then Blank, and defaults to Text.
func (c *Classifier) Classify(line string) LineType {
	switch {
	case c.header.MatchString(line):
		return Header
	case c.listMatch(line) != nil:
		return ListItem
	case strings.TrimSpace(line) == "":
		return Blank
	default:
		return Text
	}
}

// ListPrefix returns the length in runes of the leading list marker and the
// whitespace after it, or 0 when line is not a list item.
func (c *Classifier) ListPrefix(line string) int {
	if c.header.MatchString(line) {
		return 0
	}
	loc := c.listMatch(line)
	if loc == nil {
		return 0
	}
	return utf8.RuneCountInString(line[:loc[1]])
}

// listMatch returns the longest list marker match at the start of line.
func (c *Classifier) listMatch(line string) []int {
	var best []int
	for _, re := range c.list {
		if loc := re.FindStringIndex(line); loc != nil && (best == nil || loc[1] > best[1]) {
			best = loc
		}
	}
	return best
}

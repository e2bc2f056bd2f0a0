package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineType
	}{
		{"  ~ item text", ListItem},
		{"** Title", Header},
		{"   ", Blank},
		{"", Blank},
		{"* Heading", Header},
		{"  *** Deep heading", Header},
		{"- item", ListItem},
		{"-- nested item", ListItem},
		{"~~ ordered", ListItem},
		{"*bold* text", Text},
		{"-not an item", Text},
		{"plain prose", Text},
		{"\t", Blank},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestMarkdownClassifier(t *testing.T) {
	assert.Equal(t, Header, Markdown.Classify("## Section"))
	assert.Equal(t, ListItem, Markdown.Classify("* item"))
	assert.Equal(t, ListItem, Markdown.Classify("  + item"))
	assert.Equal(t, Text, Markdown.Classify("**bold** start"))
	assert.Equal(t, Text, Markdown.Classify("#hashtag"))
}

func TestMarkdownClassifier_OrderedAndQuote(t *testing.T) {
	tests := []struct {
		line   string
		want   LineType
		prefix int
	}{
		{"1. first step", ListItem, 3},
		{"12) twelfth", ListItem, 4},
		{"  3.  indented", ListItem, 6},
		{"> quoted", ListItem, 2},
		{">> nested", ListItem, 3},
		{"> > spaced", ListItem, 4},
		{">", ListItem, 1},
		{"1.5 litres", Text, 0},
		{"2024 was long", Text, 0},
		{"a > b", Text, 0},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Markdown.Classify(tt.line))
			assert.Equal(t, tt.prefix, Markdown.ListPrefix(tt.line))
		})
	}

	// Norg has no numbered items.
	assert.Equal(t, Text, Norg.Classify("1. first step"))
	assert.Equal(t, Text, Norg.Classify("> quoted"))
}

func TestClassifier_WithListPatternsCopies(t *testing.T) {
	base := NewClassifier("*", "-")
	extended := base.WithListPatterns(`^\s*\+\s+`)

	assert.Equal(t, ListItem, extended.Classify("+ plus"))
	assert.Equal(t, ListItem, extended.Classify("- dash"))
	assert.Equal(t, Text, base.Classify("+ plus"))
}

func TestClassifier_ListPrefix(t *testing.T) {
	assert.Equal(t, 2, Norg.ListPrefix("- item"))
	assert.Equal(t, 4, Norg.ListPrefix("~~  item"))
	assert.Equal(t, 4, Norg.ListPrefix("  - item"))
	assert.Equal(t, 0, Norg.ListPrefix("* heading"))
	assert.Equal(t, 0, Norg.ListPrefix("prose"))
}

func TestNewClassifier_EscapesMarkers(t *testing.T) {
	c := NewClassifier("]", "a-c")
	assert.Equal(t, Header, c.Classify("] title"))
	assert.Equal(t, ListItem, c.Classify("- item"))
	assert.Equal(t, Text, c.Classify("b item"))
}

func TestLineType_String(t *testing.T) {
	assert.Equal(t, "header", Header.String())
	assert.Equal(t, "list-item", ListItem.String())
	assert.Equal(t, "blank", Blank.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "unknown", Unknown.String())
}

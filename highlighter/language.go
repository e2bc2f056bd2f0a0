package highlighter

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/ionut-t/concealwrap/core"
)

const (
	LanguageNorg     = "norg"
	LanguageMarkdown = "markdown"
)

// DetectLanguage guesses the language of a file from its name and content.
// It returns a lower-case chroma lexer name, or "" when nothing matched.
func DetectLanguage(filename string, content []byte) string {
	if strings.EqualFold(filepath.Ext(filename), ".norg") {
		return LanguageNorg
	}
	return strings.ToLower(enry.GetLanguage(filepath.Base(filename), content))
}

// NewConcealer returns the conceal service for language: goldmark for
// markdown, a chroma lexer for everything else.
func NewConcealer(language string, lines LineSource) core.ConcealService {
	if strings.EqualFold(language, LanguageMarkdown) {
		return NewMarkdownConcealer(lines)
	}
	return New(language, "", lines)
}

// ClassifierFor returns the header and list markers used by language.
func ClassifierFor(language string) *core.Classifier {
	if strings.EqualFold(language, LanguageMarkdown) {
		return core.Markdown
	}
	return core.Norg
}

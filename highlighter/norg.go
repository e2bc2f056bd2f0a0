package highlighter

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// attached builds the rule for an inline modifier delimited by marker on both
// sides. The closing marker must not be followed by a word character.
func attached(marker string, body chroma.TokenType) chroma.Rule {
	return chroma.Rule{
		Pattern: `(` + marker + `)(\S(?:[^` + marker + `]*?\S)?)(` + marker + `)(?!\w)`,
		Type:    chroma.ByGroups(chroma.Punctuation, body, chroma.Punctuation),
	}
}

// Norg lexes the inline markup of Neorg documents. Markup delimiters are
// emitted as Punctuation, which is what the highlighter conceals.
var Norg = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Norg",
		Aliases:   []string{"norg", "neorg"},
		Filenames: []string{"*.norg"},
		MimeTypes: []string{"text/x-norg"},
	},
	norgRules,
))

func norgRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `^(\s*)(\*+)(\s)`, Type: chroma.ByGroups(chroma.Text, chroma.GenericHeading, chroma.Text)},
			{Pattern: `^(\s*)([-~]+)(\s+)`, Type: chroma.ByGroups(chroma.Text, chroma.Keyword, chroma.Text)},
			{Pattern: `\s+`, Type: chroma.Text},
			{Pattern: `(\{[^}]*\}\[)([^\]]*)(\])`, Type: chroma.ByGroups(chroma.Punctuation, chroma.NameTag, chroma.Punctuation)},
			{Pattern: `(\{)([^}]*)(\})`, Type: chroma.ByGroups(chroma.Punctuation, chroma.LiteralStringOther, chroma.Punctuation)},
			{Pattern: "(`)([^`]+)(`)", Type: chroma.ByGroups(chroma.Punctuation, chroma.LiteralStringBacktick, chroma.Punctuation)},
			attached(`\*`, chroma.GenericStrong),
			attached(`/`, chroma.GenericEmph),
			attached(`_`, chroma.GenericUnderline),
			attached(`-`, chroma.GenericDeleted),
			attached(`!`, chroma.CommentSpecial),
			attached(`\^`, chroma.GenericSubheading),
			attached(`,`, chroma.GenericSubheading),
			{Pattern: `\w+`, Type: chroma.Text},
			{Pattern: `.`, Type: chroma.Text},
		},
	}
}

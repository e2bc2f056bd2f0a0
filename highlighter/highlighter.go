package highlighter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/concealwrap/core"
)

const defaultTheme = "catppuccin-mocha"

// LineSource gives access to the current text of a buffer row.
type LineSource interface {
	Line(row int) string
}

// Highlighter tokenizes rows with a chroma lexer. It conceals markup
// delimiters (Punctuation tokens) and styles the rest for display.
type Highlighter struct {
	lines      LineSource
	lexer      chroma.Lexer
	style      *chroma.Style
	conceal    map[chroma.TokenType]bool
	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
}

// TokenPosition represents a token's position in the original line
type TokenPosition struct {
	Token     chroma.Token
	StartCol  int // rune column
	EndCol    int
	StartByte int
	EndByte   int
}

// New creates a new syntax highlighter. An unknown language leaves the
// highlighter unavailable rather than falling back to plain text.
func New(language string, theme string, lines LineSource) *Highlighter {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}

	if theme == "" {
		theme = defaultTheme
	}

	return &Highlighter{
		lines:      lines,
		lexer:      lexer,
		style:      styles.Get(theme),
		conceal:    map[chroma.TokenType]bool{chroma.Punctuation: true},
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Available reports whether a lexer exists for the configured language.
func (sh *Highlighter) Available() bool {
	return sh.lexer != nil && sh.lines != nil
}

// Tokenize lexes a single line. Inline markup never spans lines once a group
// has been joined, so no surrounding context is needed.
func (sh *Highlighter) Tokenize(line string) ([]chroma.Token, error) {
	if sh.lexer == nil {
		return nil, core.ErrNoSyntaxTree
	}
	if line == "" {
		return nil, nil
	}

	iterator, err := sh.lexer.Tokenise(nil, line)
	if err != nil {
		return nil, err
	}

	var tokens []chroma.Token
	for _, token := range iterator.Tokens() {
		// Drop a trailing newline some lexers append.
		value := strings.TrimSuffix(token.Value, "\n")
		if value == "" {
			continue
		}
		tokens = append(tokens, chroma.Token{Type: token.Type, Value: value})
	}
	return tokens, nil
}

// ConcealedRanges returns the byte ranges of row's markup delimiters.
func (sh *Highlighter) ConcealedRanges(row int) ([]core.Range, error) {
	if !sh.Available() {
		return nil, core.ErrNoSyntaxTree
	}
	ranges, err := sh.ConcealedRangesForLine(sh.lines.Line(row))
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", row, err)
	}
	return ranges, nil
}

// ConcealedRangesForLine returns the byte ranges of line's markup delimiters.
func (sh *Highlighter) ConcealedRangesForLine(line string) ([]core.Range, error) {
	tokens, err := sh.Tokenize(line)
	if err != nil {
		return nil, err
	}

	var ranges []core.Range
	for _, pos := range GetTokenPositions(tokens) {
		if !sh.conceal[pos.Token.Type] {
			continue
		}
		// Merge with the previous range when adjacent.
		if n := len(ranges); n > 0 && ranges[n-1].End == pos.StartByte {
			ranges[n-1].End = pos.EndByte
			continue
		}
		ranges = append(ranges, core.Range{Start: pos.StartByte, End: pos.EndByte})
	}
	return ranges, nil
}

// GetStyleForToken converts a Chroma token type to a lipgloss style.
func (sh *Highlighter) GetStyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	style = lipgloss.NewStyle()
	if sh.style != nil {
		entry := sh.style.Get(tokenType)
		if entry.Colour.IsSet() {
			style = style.Foreground(lipgloss.Color(entry.Colour.String()))
		}
		if entry.Bold == chroma.Yes {
			style = style.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			style = style.Italic(true)
		}
		if entry.Underline == chroma.Yes {
			style = style.Underline(true)
		}
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()

	return style
}

// GetTokenPositions converts tokens to positions in the logical line.
func GetTokenPositions(tokens []chroma.Token) []TokenPosition {
	positions := make([]TokenPosition, 0, len(tokens))
	currentCol := 0
	currentByte := 0

	for _, token := range tokens {
		tokenLen := len([]rune(token.Value))

		positions = append(positions, TokenPosition{
			Token:     token,
			StartCol:  currentCol,
			EndCol:    currentCol + tokenLen,
			StartByte: currentByte,
			EndByte:   currentByte + len(token.Value),
		})

		currentCol += tokenLen
		currentByte += len(token.Value)
	}

	return positions
}

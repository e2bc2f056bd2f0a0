package core

import (
	"bytes"
	"fmt"
	"strings"
)

// Buffer represents the text the formatter reads from and writes back to (Using Runes).
// Row ranges are half-open and zero-based.
type Buffer interface {
	// Content access
	GetLines(start, end int) ([]string, error) // Get rows [start, end) as strings
	Line(row int) string                       // Get a single row ("" when out of range)
	LineCount() int                            // Get number of lines
	GetSavedContent() string                   // Get saved buffer content as a string
	GetCurrentContent() string                 // Get entire buffer content as a string

	// Modification
	SetLines(start, end int, replacement []string) error // Replace rows [start, end) with replacement

	IsModified() bool          // Check if buffer has been modified
	SaveContent()              // Save content
	SetContent(content []byte) // Set content (from file or other source)
	IsEmpty() bool             // Check if buffer is empty
}

// textBuffer implementation using runes for better unicode handling
type textBuffer struct {
	lines        [][]rune // Store lines as slices of runes
	savedContent string
}

// NewBuffer creates a new empty buffer
func NewBuffer() Buffer {
	return &textBuffer{
		lines: [][]rune{{}}, // Start with one empty line
	}
}

func NewBufferFromBytes(content []byte) Buffer {
	b := textBuffer{
		lines: [][]rune{{}},
	}

	b.SetContent(content)
	b.SaveContent()
	return &b
}

// NewBufferFromLines creates a buffer holding lines verbatim.
func NewBufferFromLines(lines []string) Buffer {
	b := &textBuffer{}
	b.lines = toRuneLines(lines)
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	b.SaveContent()
	return b
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

func (b *textBuffer) SetContent(content []byte) {
	runes := bytes.Runes(content)
	linesRune := make([][]rune, 0)
	var currentLine []rune

	for _, r := range runes {
		if r == '\n' {
			linesRune = append(linesRune, currentLine)
			currentLine = []rune{} // Start a new line
		} else {
			currentLine = append(currentLine, r)
		}
	}

	if len(currentLine) > 0 {
		linesRune = append(linesRune, currentLine) // Add the last line if not empty
	}

	if len(linesRune) == 0 {
		linesRune = [][]rune{{}}
	}

	b.lines = linesRune
}

func (b *textBuffer) GetLines(start, end int) ([]string, error) {
	if err := b.checkRange(start, end); err != nil {
		return nil, fmt.Errorf("GetLines: %w", err)
	}
	linesStr := make([]string, 0, end-start)
	for _, r := range b.lines[start:end] {
		linesStr = append(linesStr, string(r))
	}
	return linesStr, nil
}

func (b *textBuffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// SetLines replaces rows [start, end) with replacement. start == end inserts.
func (b *textBuffer) SetLines(start, end int, replacement []string) error {
	if err := b.checkRange(start, end); err != nil {
		return fmt.Errorf("SetLines: %w", err)
	}

	finalLines := make([][]rune, 0, len(b.lines)-(end-start)+len(replacement))
	finalLines = append(finalLines, b.lines[:start]...)
	finalLines = append(finalLines, toRuneLines(replacement)...)
	finalLines = append(finalLines, b.lines[end:]...)

	// Ensure buffer always has at least one (potentially empty) line
	if len(finalLines) == 0 {
		finalLines = [][]rune{{}}
	}

	b.lines = finalLines
	return nil
}

func (b *textBuffer) checkRange(start, end int) error {
	if start < 0 || end < start || end > len(b.lines) {
		return fmt.Errorf("%w: [%d, %d) outside [0, %d)", ErrInvalidRange, start, end, len(b.lines))
	}
	return nil
}

func (b *textBuffer) IsModified() bool {
	return b.savedContent != b.GetCurrentContent()
}

func (b *textBuffer) SaveContent() {
	b.savedContent = b.GetCurrentContent()
}

// GetCurrentContent returns the entire buffer content as a string
func (b *textBuffer) GetCurrentContent() string {
	linesStr := make([]string, len(b.lines))
	for i, r := range b.lines {
		linesStr[i] = string(r)
	}
	return strings.Join(linesStr, "\n")
}

// GetSavedContent returns the saved content as a string
func (b *textBuffer) GetSavedContent() string {
	return b.savedContent
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func toRuneLines(lines []string) [][]rune {
	out := make([][]rune, len(lines))
	for i, l := range lines {
		out[i] = []rune(l)
	}
	return out
}

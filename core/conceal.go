package core

import (
	"sort"
	"unicode/utf8"
)

// Range is a half-open byte range [Start, End) within one line.
type Range struct {
	Start int
	End   int
}

// ConcealService reports which parts of a buffer row are hidden by the
// display layer.
type ConcealService interface {
	// Available reports whether concealment can be computed at all (for
	// instance, whether a syntax tree exists for the document type).
	Available() bool
	// ConcealedRanges returns the byte ranges of row that render with zero width.
	ConcealedRanges(row int) ([]Range, error)
}

// ConcealMap maps rune offsets within one logical line to their concealed
// flag. Offsets that are absent are visible. A nil map conceals nothing.
type ConcealMap map[int]bool

// Concealed reports whether the rune at offset is concealed.
func (m ConcealMap) Concealed(offset int) bool {
	return m[offset]
}

// Count returns the number of concealed offsets in [start, end).
func (m ConcealMap) Count(start, end int) int {
	n := 0
	for off, hidden := range m {
		if hidden && off >= start && off < end {
			n++
		}
	}
	return n
}

// Offsets returns the concealed offsets in ascending order.
func (m ConcealMap) Offsets() []int {
	out := make([]int, 0, len(m))
	for off, hidden := range m {
		if hidden {
			out = append(out, off)
		}
	}
	sort.Ints(out)
	return out
}

// NewConcealMap flattens byte ranges of line into rune offsets. Ranges may
// overlap or extend past the line; bytes outside the line are ignored.
func NewConcealMap(line string, ranges []Range) ConcealMap {
	if len(ranges) == 0 || line == "" {
		return nil
	}

	m := make(ConcealMap)
	runeIdx := 0
	for byteIdx := 0; byteIdx < len(line); {
		_, size := utf8.DecodeRuneInString(line[byteIdx:])
		for _, r := range ranges {
			if byteIdx >= r.Start && byteIdx < r.End {
				m[runeIdx] = true
				break
			}
		}
		byteIdx += size
		runeIdx++
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// VisibleLen returns the number of visible runes in s, where s starts at rune
// offset base of the line the map was built for.
func (m ConcealMap) VisibleLen(s string, base int) int {
	n := 0
	for i := range []rune(s) {
		if !m.Concealed(base + i) {
			n++
		}
	}
	return n
}

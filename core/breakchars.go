package core

import "unicode"

// DefaultBreakAt is the break alphabet used when none is configured.
const DefaultBreakAt = " \t!@*-+;:,./?"

// breakExclusions are safe inside words or mark list/emphasis boundaries, so
// they never act as break points whatever the configured alphabet says.
var breakExclusions = map[rune]struct{}{
	'.': {}, '/': {}, ',': {}, '!': {}, '-': {}, '*': {}, ':': {},
}

// BreakSet is the set of characters a line may be split after.
// Whitespace always qualifies.
type BreakSet struct {
	chars map[rune]struct{}
}

// NewBreakSet derives a BreakSet from alphabet minus the fixed exclusions.
func NewBreakSet(alphabet string) BreakSet {
	chars := make(map[rune]struct{})
	for _, r := range alphabet {
		if _, excluded := breakExclusions[r]; excluded {
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		chars[r] = struct{}{}
	}
	return BreakSet{chars: chars}
}

// IsBreak reports whether r is a valid break point.
func (s BreakSet) IsBreak(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	_, ok := s.chars[r]
	return ok
}

// Chars returns the non-whitespace members in no particular order.
func (s BreakSet) Chars() []rune {
	out := make([]rune, 0, len(s.chars))
	for r := range s.chars {
		out = append(out, r)
	}
	return out
}

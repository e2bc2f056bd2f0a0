package core

import "strings"

// Join collapses lines into one, trimming each line and separating former
// line boundaries with a single space. Interior whitespace is kept.
func Join(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return strings.Join(trimmed, " ")
}

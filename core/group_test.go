package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(start int, types ...LineType) []ClassifiedLine {
	out := make([]ClassifiedLine, len(types))
	for i, t := range types {
		out[i] = ClassifiedLine{Row: start + i, Type: t}
	}
	return out
}

func coveredRows(groups []Group) []int {
	var rows []int
	for _, g := range groups {
		rows = append(rows, g.Rows()...)
	}
	return rows
}

func TestGroupLines_Empty(t *testing.T) {
	assert.Empty(t, GroupLines(nil))
}

func TestGroupLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []ClassifiedLine
		want  []Group
	}{
		{
			name:  "prose joins",
			lines: classified(0, Text, Text, Text),
			want:  []Group{{Start: 0, Len: 3}},
		},
		{
			name:  "header is isolated",
			lines: classified(0, Text, Header, Text),
			want:  []Group{{Start: 0, Len: 1}, {Start: 1, Len: 1, Structural: true}, {Start: 2, Len: 1}},
		},
		{
			name:  "list item starts a run with its continuation",
			lines: classified(5, Text, ListItem, Text, ListItem, Text, Text),
			want:  []Group{{Start: 5, Len: 1}, {Start: 6, Len: 2}, {Start: 8, Len: 3}},
		},
		{
			name:  "blank extends the open run",
			lines: classified(0, Text, Blank, Text),
			want:  []Group{{Start: 0, Len: 3}},
		},
		{
			name:  "leading blank starts a run",
			lines: classified(0, Blank, Text),
			want:  []Group{{Start: 0, Len: 2}},
		},
		{
			name:  "consecutive headers",
			lines: classified(2, Header, Header),
			want:  []Group{{Start: 2, Len: 1, Structural: true}, {Start: 3, Len: 1, Structural: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupLines(tt.lines))
		})
	}
}

func TestGrouper_BreakOnBlank(t *testing.T) {
	got := Grouper{BreakOnBlank: true}.Group(classified(0, Text, Text, Blank, Text, Blank, Blank, ListItem, Text))
	want := []Group{
		{Start: 0, Len: 2},
		{Start: 2, Len: 1, Structural: true},
		{Start: 3, Len: 1},
		{Start: 4, Len: 1, Structural: true},
		{Start: 5, Len: 1, Structural: true},
		{Start: 6, Len: 2},
	}
	assert.Equal(t, want, got)
}

func TestGroupLines_HeaderAlwaysSingleton(t *testing.T) {
	types := []LineType{Header, ListItem, Blank, Text}
	for _, before := range types {
		for _, after := range types {
			for _, breakOnBlank := range []bool{false, true} {
				lines := classified(0, Text, Text, before, Header, after, Text)
				groups := Grouper{BreakOnBlank: breakOnBlank}.Group(lines)
				assert.Contains(t, groups, Group{Start: 3, Len: 1, Structural: true}, "before=%v after=%v", before, after)
			}
		}
	}
}

func TestGroupLines_CoversEveryRowOnce(t *testing.T) {
	types := []LineType{Header, ListItem, Blank, Text}
	// Every sequence of four types.
	for a := range types {
		for b := range types {
			for c := range types {
				for d := range types {
					lines := classified(10, types[a], types[b], types[c], types[d])
					for _, breakOnBlank := range []bool{false, true} {
						groups := Grouper{BreakOnBlank: breakOnBlank}.Group(lines)
						require.Equal(t, []int{10, 11, 12, 13}, coveredRows(groups))
						for _, g := range groups {
							assert.Positive(t, g.Len)
						}
					}
				}
			}
		}
	}
}

func TestClassifier_ClassifyRows(t *testing.T) {
	got := Norg.ClassifyRows(4, []string{"* H", "text", "", "- item"})
	assert.Equal(t, classified(4, Header, Text, Blank, ListItem), got)
}

package core

// ClassifiedLine pairs an original zero-based row with its LineType.
type ClassifiedLine struct {
	Row  int
	Type LineType
}

// Group is a contiguous run of original rows processed as one block.
type Group struct {
	Start      int
	Len        int
	Structural bool // a header (or, in paragraph mode, blank) singleton
}

// End returns the first row after the group.
func (g Group) End() int {
	return g.Start + g.Len
}

// Rows returns the original row indices of the group.
func (g Group) Rows() []int {
	rows := make([]int, g.Len)
	for i := range rows {
		rows[i] = g.Start + i
	}
	return rows
}

// Grouper partitions classified lines into groups.
//
// A header always forms its own group. A list item closes the open run and
// starts a new one, so it never joins preceding prose. Text extends the open
// run. Blank lines extend the open run too unless BreakOnBlank is set, in
// which case they separate paragraphs as singleton groups.
type Grouper struct {
	BreakOnBlank bool
}

// GroupLines groups lines with the default policy (blank lines join the open run).
func GroupLines(lines []ClassifiedLine) []Group {
	return Grouper{}.Group(lines)
}

func (gr Grouper) Group(lines []ClassifiedLine) []Group {
	var groups []Group
	var run *Group

	flush := func() {
		if run != nil {
			groups = append(groups, *run)
			run = nil
		}
	}
	extend := func(row int) {
		if run == nil {
			run = &Group{Start: row, Len: 1}
			return
		}
		run.Len++
	}

	for _, l := range lines {
		switch l.Type {
		case Header:
			flush()
			groups = append(groups, Group{Start: l.Row, Len: 1, Structural: true})
		case ListItem:
			flush()
			extend(l.Row)
		case Blank:
			if gr.BreakOnBlank {
				flush()
				groups = append(groups, Group{Start: l.Row, Len: 1, Structural: true})
				continue
			}
			extend(l.Row)
		default:
			extend(l.Row)
		}
	}
	flush()

	return groups
}

// ClassifyRows classifies lines, numbering them from start.
func (c *Classifier) ClassifyRows(start int, lines []string) []ClassifiedLine {
	out := make([]ClassifiedLine, len(lines))
	for i, l := range lines {
		out[i] = ClassifiedLine{Row: start + i, Type: c.Classify(l)}
	}
	return out
}

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ionut-t/concealwrap/core"
	"github.com/ionut-t/concealwrap/highlighter"
)

type ClassifyCmd struct {
	File       string `arg:"" optional:"" help:"File to classify; stdin when empty" type:"existingfile"`
	Lang       string `name:"lang" short:"l" help:"Language: norg or markdown (detected when empty)"`
	Paragraphs bool   `help:"Treat blank lines as paragraph separators"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}

	var content []byte
	if c.File == "" {
		content, err = io.ReadAll(g.in)
	} else {
		content, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}

	language := c.Lang
	if language == "" {
		language = cfg.Language
	}
	if language == "" {
		language = highlighter.DetectLanguage(c.File, content)
	}

	buf := core.NewBufferFromBytes(content)
	lines, err := buf.GetLines(0, buf.LineCount())
	if err != nil {
		return err
	}

	grouper := cfg.Grouper()
	if c.Paragraphs {
		grouper.BreakOnBlank = true
	}
	classified := highlighter.ClassifierFor(language).ClassifyRows(0, lines)
	groups := grouper.Group(classified)

	w := tabwriter.NewWriter(g.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tTYPE\tGROUP\tTEXT")
	for i, group := range groups {
		for _, row := range group.Rows() {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", row+1, classified[row].Type, i+1, lines[row])
		}
	}
	return w.Flush()
}

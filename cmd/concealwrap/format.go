package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ionut-t/concealwrap/config"
	"github.com/ionut-t/concealwrap/core"
	"github.com/ionut-t/concealwrap/highlighter"
	"golang.org/x/term"
)

type FormatCmd struct {
	Files      []string `arg:"" optional:"" help:"Files to rewrap; stdin when none" type:"existingfile"`
	Width      int      `name:"width" short:"W" help:"Text width (overrides config)"`
	Lang       string   `name:"lang" short:"l" help:"Language: norg or markdown (detected when empty)"`
	Start      int      `help:"First row to rewrap, 0-based" default:"0"`
	Count      int      `help:"Number of rows to rewrap; the rest of the file when negative" default:"-1"`
	Write      bool     `short:"w" help:"Write the result back to each file"`
	Diff       bool     `short:"d" help:"Print a line diff instead of the result"`
	Paragraphs bool     `help:"Treat blank lines as paragraph separators"`
}

// plainText is the fallback used when no syntax service exists for the
// language: nothing is concealed, so widths are raw rune counts.
type plainText struct{}

func (plainText) Available() bool                           { return true }
func (plainText) ConcealedRanges(int) ([]core.Range, error) { return nil, nil }

func (c *FormatCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	if len(c.Files) == 0 {
		if c.Write {
			return errors.New("--write needs at least one file")
		}
		content, err := io.ReadAll(g.in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		out, err := c.format(cfg, logger, "", content)
		if err != nil {
			return err
		}
		return c.emit(g, "<stdin>", content, out)
	}

	for _, name := range c.Files {
		content, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		out, err := c.format(cfg, logger, name, content)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if c.Write {
			if bytes.Equal(content, out) {
				continue
			}
			if err := writeFile(name, out); err != nil {
				return err
			}
			logger.Info("file rewrapped", "file", name)
			continue
		}
		if err := c.emit(g, name, content, out); err != nil {
			return err
		}
	}
	return nil
}

// format rewraps content. A trailing newline is kept when present.
func (c *FormatCmd) format(cfg config.Config, logger *slog.Logger, name string, content []byte) ([]byte, error) {
	language := c.Lang
	if language == "" {
		language = cfg.Language
	}
	if language == "" {
		language = highlighter.DetectLanguage(name, content)
	}

	buf := core.NewBufferFromBytes(content)
	f := core.NewFormatter(buf, highlighter.NewConcealer(language, buf))
	f.Classifier = highlighter.ClassifierFor(language)
	cfg.Apply(f)
	f.Logger = logger.With("file", name, "language", language)
	if c.Width > 0 {
		f.Width = c.Width
	}
	if c.Paragraphs {
		f.Grouper.BreakOnBlank = true
	}

	count := c.Count
	if count < 0 {
		count = buf.LineCount() - c.Start
	}
	req := core.Request{Start: c.Start, Count: count, Mode: core.NormalMode}

	res, err := f.Format(req)
	if err != nil {
		return nil, err
	}
	if res.Status == core.StatusDeferred {
		f.Logger.Info("no conceal service, wrapping raw text", "reason", res.Reason)
		f.Concealer = plainText{}
		if res, err = f.Format(req); err != nil {
			return nil, err
		}
	}
	f.Logger.Debug("formatted", "groups", len(res.Groups), "failed", len(res.Failed()), "delta", res.Delta)

	out := buf.GetCurrentContent()
	if bytes.HasSuffix(content, []byte("\n")) {
		out += "\n"
	}
	return []byte(out), nil
}

func (c *FormatCmd) emit(g *Globals, name string, before, after []byte) error {
	if !c.Diff {
		_, err := g.out.Write(after)
		return err
	}
	_, err := io.WriteString(g.out, lineDiff(name, string(before), string(after), isTerminal(g.out)))
	return err
}

func writeFile(name string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(name, content, mode)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

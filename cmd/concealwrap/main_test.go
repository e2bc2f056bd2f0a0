package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGlobals(t *testing.T, stdin string) (*Globals, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Globals{
		Config: filepath.Join(t.TempDir(), "absent.yaml"),
		in:     strings.NewReader(stdin),
		out:    &out,
	}, &out
}

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatCmd_Stdin(t *testing.T) {
	g, out := testGlobals(t, "some *bold* text that keeps going past the edge\n")

	cmd := FormatCmd{Lang: "norg", Width: 20, Count: -1}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, "some *bold* text that\nkeeps going past the\nedge\n", out.String())
}

func TestFormatCmd_UnknownLanguageWrapsRawText(t *testing.T) {
	g, out := testGlobals(t, "some *bold* text that keeps going")

	cmd := FormatCmd{Lang: "no-such-language", Width: 20, Count: -1}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, "some *bold* text\nthat keeps going", out.String())
}

func TestFormatCmd_WriteMarkdownFile(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "notes.md", "# Title\nsome **bold** words here and more\n")
	g, out := testGlobals(t, "")

	cmd := FormatCmd{Files: []string{path}, Width: 15, Count: -1, Write: true}
	require.NoError(t, cmd.Run(g))
	assert.Empty(t, out.String())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\nsome **bold** words\nhere and more\n", string(got))
}

func TestFormatCmd_WriteNeedsFiles(t *testing.T) {
	g, _ := testGlobals(t, "x")
	cmd := FormatCmd{Write: true, Count: -1}
	assert.Error(t, cmd.Run(g))
}

func TestFormatCmd_Paragraphs(t *testing.T) {
	g, out := testGlobals(t, "one\ntwo\n\nthree\nfour\n")

	cmd := FormatCmd{Lang: "norg", Count: -1, Paragraphs: true}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, "one two\n\nthree four\n", out.String())
}

func TestFormatCmd_Range(t *testing.T) {
	g, out := testGlobals(t, "keep\nthis\n* Header\njoin\nme\n")

	cmd := FormatCmd{Lang: "norg", Start: 3, Count: 2}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, "keep\nthis\n* Header\njoin me\n", out.String())
}

func TestFormatCmd_Diff(t *testing.T) {
	g, out := testGlobals(t, "alpha\nbeta\n")

	cmd := FormatCmd{Lang: "norg", Count: -1, Diff: true}
	require.NoError(t, cmd.Run(g))

	diff := out.String()
	assert.Contains(t, diff, "--- <stdin>")
	assert.Contains(t, diff, "-alpha\n")
	assert.Contains(t, diff, "-beta\n")
	assert.Contains(t, diff, "+alpha beta\n")
}

func TestLineDiff_NoChange(t *testing.T) {
	assert.Empty(t, lineDiff("x", "same\n", "same\n", false))
}

func TestClassifyCmd(t *testing.T) {
	g, out := testGlobals(t, "* Title\n- item\n  more\ntext\n")

	cmd := ClassifyCmd{Lang: "norg"}
	require.NoError(t, cmd.Run(g))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"ROW", "TYPE", "GROUP", "TEXT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "header", "1", "*", "Title"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "list-item", "2", "-", "item"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"3", "text", "2", "more"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"4", "text", "2", "text"}, strings.Fields(lines[4]))
}

func TestVersionCmd(t *testing.T) {
	g, out := testGlobals(t, "")
	require.NoError(t, (&VersionCmd{}).Run(g))
	assert.Equal(t, "concealwrap version "+version+"\n", out.String())
}

func TestGlobals_InvalidLogLevel(t *testing.T) {
	g, _ := testGlobals(t, "")
	g.LogLevel = "loud"
	_, _, err := g.load()
	assert.Error(t, err)
}

func TestParseCommandLine(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("concealwrap"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"format", "--width", "40", "--lang", "markdown", "--paragraphs"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ctx.Command(), "format"))
	assert.Equal(t, 40, cli.Format.Width)
	assert.Equal(t, "markdown", cli.Format.Lang)
	assert.True(t, cli.Format.Paragraphs)
	assert.Equal(t, -1, cli.Format.Count)

	_, err = parser.Parse([]string{"classify", "--lang", "norg"})
	require.NoError(t, err)
}

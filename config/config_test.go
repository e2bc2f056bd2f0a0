package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ionut-t/concealwrap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, core.DefaultWidth, cfg.TextWidth)
	assert.Equal(t, core.DefaultBreakAt, *cfg.BreakAt)
	assert.Equal(t, IndentOriginal, cfg.Indent)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concealwrap.yaml")
	data := []byte(`textwidth: 60
breakat: " -"
language: Markdown
indent: AUTO
paragraphs: true
log_level: debug
log_format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TextWidth)
	assert.Equal(t, " -", *cfg.BreakAt)
	assert.Equal(t, "markdown", cfg.Language)
	assert.Equal(t, IndentAuto, cfg.Indent)
	assert.True(t, cfg.Paragraphs)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, core.DefaultTabStop, cfg.TabStop)
}

func TestParse_Normalizes(t *testing.T) {
	cfg, err := Parse([]byte("textwidth: 0\ntabstop: -2\n"))
	require.NoError(t, err)
	assert.Equal(t, core.DefaultWidth, cfg.TextWidth)
	assert.Equal(t, core.DefaultTabStop, cfg.TabStop)
}

func TestParse_EmptyBreakAtKeepsWhitespaceBreaks(t *testing.T) {
	cfg, err := Parse([]byte(`breakat: ""`))
	require.NoError(t, err)

	breaks := cfg.Breaks()
	assert.True(t, breaks.IsBreak(' '))
	assert.False(t, breaks.IsBreak('-'))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "textwidth: [1"},
		{"bad indent", "indent: sideways"},
		{"bad level", "log_level: loud"},
		{"bad format", "log_format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestIndenter(t *testing.T) {
	buf := core.NewBufferFromLines([]string{"    above", "x"})
	req := core.IndentRequest{Row: 1, Line: "x", Original: []string{"\tx"}}

	cfg := Default()
	cfg.TabStop = 2

	cfg.Indent = IndentOriginal
	n, err := cfg.Indenter(buf).IndentFor(req)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cfg.Indent = IndentAuto
	n, err = cfg.Indenter(buf).IndentFor(req)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	cfg.Indent = IndentNone
	n, err = cfg.Indenter(buf).IndentFor(req)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestApply(t *testing.T) {
	buf := core.NewBufferFromLines([]string{"a"})
	f := core.NewFormatter(buf, nil)

	cfg := Default()
	cfg.TextWidth = 40
	cfg.Paragraphs = true
	cfg.Apply(f)

	assert.Equal(t, 40, f.Width)
	assert.True(t, f.Grouper.BreakOnBlank)
	assert.IsType(t, core.OriginalIndent{}, f.Indenter)
}

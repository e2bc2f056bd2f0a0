// Package config loads formatter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ionut-t/concealwrap/core"
	"github.com/ionut-t/concealwrap/internal/logging"
	"gopkg.in/yaml.v3"
)

type IndentMode string

const (
	IndentOriginal IndentMode = "original"
	IndentAuto     IndentMode = "auto"
	IndentNone     IndentMode = "none"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config mirrors the YAML file. Zero values fall back to the defaults.
type Config struct {
	TextWidth  int        `yaml:"textwidth"`
	BreakAt    *string    `yaml:"breakat"`
	Language   string     `yaml:"language"`
	Theme      string     `yaml:"theme"`
	Indent     IndentMode `yaml:"indent"`
	TabStop    int        `yaml:"tabstop"`
	Paragraphs bool       `yaml:"paragraphs"`
	LogLevel   string     `yaml:"log_level"`
	LogFormat  string     `yaml:"log_format"`
}

func Default() Config {
	breakAt := core.DefaultBreakAt
	return Config{
		TextWidth: core.DefaultWidth,
		BreakAt:   &breakAt,
		Indent:    IndentOriginal,
		TabStop:   core.DefaultTabStop,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	if c.TextWidth <= 0 {
		c.TextWidth = core.DefaultWidth
	}
	if c.TabStop <= 0 {
		c.TabStop = core.DefaultTabStop
	}
	if c.BreakAt == nil {
		breakAt := core.DefaultBreakAt
		c.BreakAt = &breakAt
	}
	c.Indent = IndentMode(strings.ToLower(string(c.Indent)))
	if c.Indent == "" {
		c.Indent = IndentOriginal
	}
	c.Language = strings.ToLower(c.Language)
}

func (c Config) Validate() error {
	switch c.Indent {
	case IndentOriginal, IndentAuto, IndentNone:
	default:
		return fmt.Errorf("%w: indent must be original, auto or none, got %q", ErrInvalidConfig, c.Indent)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Breaks returns the configured break character set.
func (c Config) Breaks() core.BreakSet {
	if c.BreakAt == nil {
		return core.NewBreakSet(core.DefaultBreakAt)
	}
	return core.NewBreakSet(*c.BreakAt)
}

// Indenter returns the indent service for the configured mode. The auto mode
// reads neighbouring rows from buf.
func (c Config) Indenter(buf core.Buffer) core.Indenter {
	switch c.Indent {
	case IndentAuto:
		return core.AutoIndent{Buffer: buf, TabStop: c.TabStop}
	case IndentNone:
		return core.FixedIndent(0)
	default:
		return core.OriginalIndent{TabStop: c.TabStop}
	}
}

func (c Config) Grouper() core.Grouper {
	return core.Grouper{BreakOnBlank: c.Paragraphs}
}

// Apply copies the formatting settings onto f. The indenter reads from
// f.Buffer, so set the buffer first.
func (c Config) Apply(f *core.Formatter) {
	f.Width = c.TextWidth
	f.Breaks = c.Breaks()
	f.Grouper = c.Grouper()
	f.Indenter = c.Indenter(f.Buffer)
}

// Logger builds the logger described by LogLevel and LogFormat.
func (c Config) Logger() *slog.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	format, _ := logging.ParseFormat(c.LogFormat)
	return logging.InitLogger(level, format)
}

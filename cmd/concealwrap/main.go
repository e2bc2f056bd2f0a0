// Command concealwrap hard-wraps prose to a visible width, ignoring markup
// that an editor would conceal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/ionut-t/concealwrap/config"
)

const version = "0.1.0"

// Globals holds the flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Config file path (default: user config dir)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string `name:"log-format" help:"Log format: text or json"`

	in  io.Reader
	out io.Writer
}

// CLI defines the command-line interface for concealwrap.
type CLI struct {
	Globals

	Format   FormatCmd   `cmd:"" default:"withargs" help:"Rewrap files or stdin"`
	Preview  PreviewCmd  `cmd:"" help:"Open an interactive preview of a file"`
	Classify ClassifyCmd `cmd:"" help:"Print the line type and group of every row"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	_, err := fmt.Fprintf(g.out, "concealwrap version %s\n", version)
	return err
}

// load reads the config file and applies the global overrides.
func (g *Globals) load() (config.Config, *slog.Logger, error) {
	path := g.Config
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "concealwrap", "config.yaml")
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.LogFormat = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, cfg.Logger(), nil
}

func main() {
	cli := CLI{Globals: Globals{in: os.Stdin, out: os.Stdout}}
	ctx := kong.Parse(&cli,
		kong.Name("concealwrap"),
		kong.Description("Concealment-aware hard wrap for norg and markdown"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/speed/internal/config"
	"github.com/lox/speed/internal/tui"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"${config_file}" help:"HCL configuration file" type:"path"`
	NoColor bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play Speed against the computer"`
	Simulate SimulateCmd      `cmd:"" help:"Play many computer games and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("speed"),
		kong.Description("The card game Speed in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the configuration file and applies the global flags
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}
	tui.SetColor(!cfg.UI.NoColor)
	return cfg, nil
}

// Package config loads the speed HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file read when none is given
const DefaultFile = "speed.hcl"

// Strategies lists the agents the simulator can seat as the player
var Strategies = []string{"greedy", "random"}

// Config represents the complete speed configuration
type Config struct {
	Game     GameSettings
	UI       UISettings
	Simulate SimulateSettings
}

// GameSettings controls how games are dealt
type GameSettings struct {
	Seed int64 `hcl:"seed,optional"`
}

// UISettings contains terminal interface settings
type UISettings struct {
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
	NoColor       bool   `hcl:"no_color,optional"`
	ComputerDelay string `hcl:"computer_delay,optional"`
}

// SimulateSettings contains defaults for batch simulation
type SimulateSettings struct {
	Games    int    `hcl:"games,optional"`
	Workers  int    `hcl:"workers,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// every block is optional in the file
type fileConfig struct {
	Game     *GameSettings     `hcl:"game,block"`
	UI       *UISettings       `hcl:"ui,block"`
	Simulate *SimulateSettings `hcl:"simulate,block"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UISettings{
			LogLevel:      "info",
			LogFile:       "speed.log",
			ComputerDelay: "0s",
		},
		Simulate: SimulateSettings{
			Games:    1000,
			Workers:  runtime.NumCPU(),
			Strategy: "greedy",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if fc.Game != nil {
		config.Game = *fc.Game
	}
	if fc.UI != nil {
		defaults := config.UI
		config.UI = *fc.UI
		if config.UI.LogLevel == "" {
			config.UI.LogLevel = defaults.LogLevel
		}
		if config.UI.LogFile == "" {
			config.UI.LogFile = defaults.LogFile
		}
		if config.UI.ComputerDelay == "" {
			config.UI.ComputerDelay = defaults.ComputerDelay
		}
	}
	if fc.Simulate != nil {
		defaults := config.Simulate
		config.Simulate = *fc.Simulate
		if config.Simulate.Games == 0 {
			config.Simulate.Games = defaults.Games
		}
		if config.Simulate.Workers == 0 {
			config.Simulate.Workers = defaults.Workers
		}
		if config.Simulate.Strategy == "" {
			config.Simulate.Strategy = defaults.Strategy
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("ui: invalid log_level %q", c.UI.LogLevel)
	}
	delay, err := time.ParseDuration(c.UI.ComputerDelay)
	if err != nil {
		return fmt.Errorf("ui: invalid computer_delay %q: %w", c.UI.ComputerDelay, err)
	}
	if delay < 0 {
		return fmt.Errorf("ui: computer_delay must not be negative")
	}

	if c.Simulate.Games < 1 {
		return fmt.Errorf("simulate: games must be positive")
	}
	if c.Simulate.Workers < 1 {
		return fmt.Errorf("simulate: workers must be positive")
	}
	if !ValidStrategy(c.Simulate.Strategy) {
		return fmt.Errorf("simulate: invalid strategy %s", c.Simulate.Strategy)
	}
	return nil
}

// ComputerDelayDuration returns the auto-play interval; zero disables it
func (c *Config) ComputerDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.ComputerDelay)
	if err != nil {
		return 0
	}
	return d
}

// Level returns the configured log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ValidStrategy reports whether name is a known simulator strategy
func ValidStrategy(name string) bool {
	return slices.Contains(Strategies, name)
}

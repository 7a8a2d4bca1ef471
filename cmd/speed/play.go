package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/speed/internal/deck"
	"github.com/lox/speed/internal/fileutil"
	"github.com/lox/speed/internal/game"
	"github.com/lox/speed/internal/tui"
)

// PlayCmd starts an interactive game
type PlayCmd struct {
	Seed          *int64         `help:"Deterministic shuffle seed (optional)"`
	Deck          string         `help:"Deal from this exact card order instead of shuffling, bottom card first (e.g. \"Ad 2s ... Kh\")"`
	ComputerDelay *time.Duration `help:"Let the computer move on its own at this interval (e.g. 1.5s)"`
	LogFile       string         `help:"Write logs to this file"`
	LogLevel      string         `help:"Log level (debug, info, warn, error)"`
	History       string         `help:"Save the finished game's move history to this file" type:"path"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.ComputerDelay != nil {
		cfg.UI.ComputerDelay = c.ComputerDelay.String()
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := openLogFile(cfg.UI.LogFile, cfg.Level(), "speed")
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	gameOpts, err := c.gameOptions(cfg.Game.Seed)
	if err != nil {
		return err
	}

	model, err := tui.NewModel(logger, tui.Options{
		ComputerDelay: cfg.ComputerDelayDuration(),
	}, gameOpts...)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	g := model.Game()
	logger.Info("Starting interactive game",
		"game", g.ID(),
		"seed", g.Seed(),
		"computerDelay", cfg.ComputerDelayDuration())

	if err := tui.Run(model); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if !g.IsOver() || g.Phase() == game.Exited {
		if g.Seed() != 0 {
			fmt.Printf("Replay this deal with --seed %d\n", g.Seed())
		}
		return nil
	}

	fmt.Print(g.Summary())
	if c.History != "" {
		if err := saveHistory(c.History, g); err != nil {
			return err
		}
		logger.Info("Saved game history", "game", g.ID(), "file", c.History)
	}
	return nil
}

func saveHistory(path string, g *game.Game) error {
	if err := fileutil.WriteFileAtomic(path, []byte(g.Summary()), 0o644); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (c *PlayCmd) gameOptions(seed int64) ([]game.Option, error) {
	if c.Deck == "" {
		return []game.Option{game.WithSeed(seed)}, nil
	}
	cards, err := deck.ParseCards(c.Deck)
	if err != nil {
		return nil, fmt.Errorf("invalid --deck: %w", err)
	}
	return []game.Option{game.WithDeck(deck.FromCards(cards))}, nil
}

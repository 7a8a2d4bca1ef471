package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/speed/internal/game"
	"github.com/lox/speed/internal/simulator"
	"github.com/lox/speed/internal/statistics"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// SimulateCmd plays many games between the computer and a player agent
type SimulateCmd struct {
	Games    int    `short:"n" help:"Number of games to simulate"`
	Workers  int    `short:"w" help:"Parallel workers"`
	Seed     *int64 `help:"Base RNG seed (optional)"`
	Strategy string `help:"Player agent: greedy or random"`
	Debug    bool   `help:"Enable debug logging"`
	Quiet    bool   `short:"q" help:"Hide the progress bar"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Games != 0 {
		cfg.Simulate.Games = c.Games
	}
	if c.Workers != 0 {
		cfg.Simulate.Workers = c.Workers
	}
	if c.Strategy != "" {
		cfg.Simulate.Strategy = c.Strategy
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "speed"})

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	var monitor simulator.Monitor
	if !c.Quiet {
		monitor = newProgressMonitor(os.Stdout)
	}

	sim := simulator.New(simulator.Config{
		Games:    cfg.Simulate.Games,
		Workers:  cfg.Simulate.Workers,
		Seed:     cfg.Game.Seed,
		Strategy: cfg.Simulate.Strategy,
		Logger:   logger,
		Monitor:  monitor,
	})

	fmt.Println(titleStyle.Render(" ♠ ♥ Speed simulation ♦ ♣ "))
	fmt.Printf("%d games, %s player vs greedy computer, %d workers (seed: %d)\n\n",
		cfg.Simulate.Games, cfg.Simulate.Strategy, cfg.Simulate.Workers, sim.Seed())

	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printResults(result)
	return nil
}

func printResults(result *simulator.Result) {
	stats := result.Stats

	fmt.Println()
	fmt.Println(titleStyle.Render(" RESULTS "))
	fmt.Printf("Games:          %d in %.2fs (%.0f games/sec)\n",
		stats.Games, result.Elapsed.Seconds(), result.GamesPerSecond())
	printWinRate(stats, game.Human, result.Strategy)
	printWinRate(stats, game.Computer, "greedy")

	low, high := stats.ConfidenceInterval95()
	fmt.Printf("Game length:    %.1f ± %.1f plays (95%% CI [%.1f, %.1f])\n",
		stats.Mean(), stats.StdDev(), low, high)
	fmt.Printf("                median %.0f, p10 %.0f, p90 %.0f, range %d-%d\n",
		stats.Median(), stats.Percentile(0.1), stats.Percentile(0.9), stats.MinTurns, stats.MaxTurns)
	fmt.Printf("Burns:          %.2f per game, %d games (%.1f%%) needed a stalemate burn\n",
		stats.BurnsPerGame(), stats.BurnedGames, 100*float64(stats.BurnedGames)/float64(stats.Games))
	fmt.Printf("Winning margin: %.1f cards left in the loser's hand\n", stats.MeanMargin())
}

func printWinRate(stats *statistics.Statistics, seat game.Seat, strategy string) {
	low, high := stats.WinRateInterval95(seat)
	fmt.Printf("%-15s %5.1f%% wins (%d) [%.1f%%, %.1f%%] %s\n",
		seat.String()+":", 100*stats.WinRate(seat), stats.Wins[seat], 100*low, 100*high, strategy)
}

package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/speed/internal/game"
	"github.com/lox/speed/internal/randutil"
	"github.com/lox/speed/internal/statistics"
)

// maxSteps bounds a single game. Every step plays or burns at least one of
// the 50 held cards, so a correct game never gets close.
const maxSteps = 500

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Workers  int
	Seed     int64
	Strategy string // Agent seated as the player: greedy or random
	Logger   *log.Logger
	Clock    quartz.Clock
	Monitor  Monitor
}

// Monitor receives progress as games finish. Calls are serialized.
type Monitor interface {
	OnGameComplete(completed, total int)
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Seed     int64
	Strategy string
	Elapsed  time.Duration
}

// GamesPerSecond returns simulation throughput
func (r *Result) GamesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Stats.Games) / r.Elapsed.Seconds()
}

// Simulator plays many computer-versus-agent games in parallel
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = runtime.NumCPU()
	}
	if config.Strategy == "" {
		config.Strategy = "greedy"
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	config.Seed = randutil.Seed(config.Seed)
	return &Simulator{config: config}
}

// Seed returns the base seed every game seed is derived from
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run plays the configured number of games. Game i is always dealt from the
// same derived seed, so results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if _, err := NewAgent(s.config.Strategy, 0); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"games", s.config.Games,
		"workers", s.config.Workers,
		"seed", s.config.Seed,
		"strategy", s.config.Strategy)

	start := s.config.Clock.Now()
	results := make([]statistics.GameResult, s.config.Games)

	var mu sync.Mutex
	completed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := randutil.Derive(s.config.Seed, i)
			result, err := s.playGame(seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result

			if s.config.Monitor != nil {
				mu.Lock()
				completed++
				s.config.Monitor.OnGameComplete(completed, s.config.Games)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	logger.Info("Simulation complete",
		"games", stats.Games,
		"playerWinRate", stats.WinRate(game.Human),
		"meanTurns", stats.Mean(),
		"elapsed", elapsed)

	return &Result{
		Stats:    stats,
		Seed:     s.config.Seed,
		Strategy: s.config.Strategy,
		Elapsed:  elapsed,
	}, nil
}

func (s *Simulator) playGame(seed int64) (statistics.GameResult, error) {
	player, err := NewAgent(s.config.Strategy, seed)
	if err != nil {
		return statistics.GameResult{}, err
	}

	g, err := game.New(
		game.WithSeed(seed),
		game.WithLogger(s.config.Logger),
		game.WithClock(s.config.Clock),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}
	if err := PlayOut(g, player); err != nil {
		return statistics.GameResult{}, err
	}

	winner, _ := g.Winner()
	return statistics.GameResult{
		Seed:      seed,
		Winner:    winner,
		Turns:     g.Turns(),
		Burns:     g.Burns(),
		LoserLeft: g.CardsLeft(winner.Opponent()),
	}, nil
}

// PlayOut drives g to completion. Each round the player agent places a card
// if it can, then the computer takes its turn, which also resolves stalemates.
func PlayOut(g *game.Game, player game.Agent) error {
	for step := 0; !g.IsOver(); step++ {
		if step >= maxSteps {
			return fmt.Errorf("game %s did not finish after %d steps", g.ID(), maxSteps)
		}

		if legal := g.Playable(game.Human); len(legal) > 0 {
			left, right := g.MiddleCards()
			view := game.View{
				Left:          left,
				Right:         right,
				Hand:          g.ActiveHand(game.Human),
				ReserveSize:   g.ReserveSize(game.Human),
				OpponentCards: g.CardsLeft(game.Computer),
			}
			if move, ok := player.ChooseMove(view, legal); ok {
				if _, err := g.SubmitMenuChoice(game.ChoiceFor(move.Pile)); err != nil {
					return err
				}
				if _, err := g.SubmitCardChoice(move.Index); err != nil {
					return err
				}
				if g.IsOver() {
					break
				}
			}
		}

		if _, err := g.ComputerTurn(); err != nil {
			return err
		}
	}
	return nil
}

// NewAgent creates the player agent for strategy. Random agents draw from a
// stream derived from seed.
func NewAgent(strategy string, seed int64) (game.Agent, error) {
	switch strategy {
	case "greedy":
		return game.GreedyAgent{}, nil
	case "random":
		return game.NewRandomAgent(randutil.New(randutil.Derive(seed, 1))), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

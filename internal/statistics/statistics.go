package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/speed/internal/game"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed      int64     // RNG seed for this game (for replay)
	Winner    game.Seat // Side that emptied its cards first
	Turns     int       // Cards successfully played
	Burns     int       // Cards burned to break stalemates
	LoserLeft int       // Cards the losing side still held
}

// Statistics aggregates simulated games. Game length is measured in plays.
type Statistics struct {
	Games     int
	SumTurns  float64
	SumTurns2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all lengths for median/percentile calculation

	Wins        [2]int // Indexed by game.Seat
	SumBurns    int
	BurnedGames int // Games that needed at least one stalemate burn
	SumMargin   int // Cards left in the losers' hands

	MinTurns int
	MaxTurns int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	turns := float64(result.Turns)
	if s.Games == 0 || result.Turns < s.MinTurns {
		s.MinTurns = result.Turns
	}
	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}

	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)

	if result.Winner == game.Human || result.Winner == game.Computer {
		s.Wins[result.Winner]++
	}
	s.SumBurns += result.Burns
	if result.Burns > 0 {
		s.BurnedGames++
	}
	s.SumMargin += result.LoserLeft
}

// Mean returns the mean game length in plays
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of game length
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of game length
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median game length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of games seat won
func (s *Statistics) WinRate(seat game.Seat) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[seat]) / float64(s.Games)
}

// WinRateInterval95 returns the normal approximation 95% interval for seat's
// win rate, clamped to [0, 1]
func (s *Statistics) WinRateInterval95(seat game.Seat) (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.WinRate(seat)
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// BurnsPerGame returns the mean number of burned cards per game
func (s *Statistics) BurnsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumBurns) / float64(s.Games)
}

// MeanMargin returns how many cards the loser held on average
func (s *Statistics) MeanMargin() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumMargin) / float64(s.Games)
}

// Merge folds other into s. Values are appended in other's order.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil || other.Games == 0 {
		return
	}
	if s.Games == 0 || other.MinTurns < s.MinTurns {
		s.MinTurns = other.MinTurns
	}
	if other.MaxTurns > s.MaxTurns {
		s.MaxTurns = other.MaxTurns
	}
	s.Games += other.Games
	s.SumTurns += other.SumTurns
	s.SumTurns2 += other.SumTurns2
	s.Values = append(s.Values, other.Values...)
	s.Wins[game.Human] += other.Wins[game.Human]
	s.Wins[game.Computer] += other.Wins[game.Computer]
	s.SumBurns += other.SumBurns
	s.BurnedGames += other.BurnedGames
	s.SumMargin += other.SumMargin
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if wins := s.Wins[game.Human] + s.Wins[game.Computer]; wins != s.Games {
		return fmt.Errorf("total wins (%d) does not match games count (%d)", wins, s.Games)
	}
	if s.BurnedGames > s.Games {
		return fmt.Errorf("burned games (%d) exceeds games count (%d)", s.BurnedGames, s.Games)
	}
	if s.MinTurns > s.MaxTurns {
		return fmt.Errorf("shortest game (%d) longer than longest (%d)", s.MinTurns, s.MaxTurns)
	}
	return nil
}

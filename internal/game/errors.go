package game

import (
	"errors"
	"fmt"

	"github.com/lox/speed/internal/deck"
)

var (
	// ErrInvalidCommand is returned for malformed or out of range menu and
	// card input. The game state is never changed.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrIllegalPlacement is returned when a card is not adjacent in rank to
	// the pile it was played on.
	ErrIllegalPlacement = errors.New("illegal placement")

	// ErrGameOver is returned for any move attempted after the game ended.
	ErrGameOver = errors.New("game over")

	// ErrSetup marks a broken deal invariant while creating a game.
	ErrSetup = errors.New("game setup failed")
)

// PlacementError describes a rejected placement. The card is handed back
// unchanged and the pile keeps its top.
type PlacementError struct {
	Card deck.Card
	Top  deck.Card
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s: %s cannot be placed on %s", ErrIllegalPlacement, e.Card, e.Top)
}

// Is makes errors.Is(err, ErrIllegalPlacement) match
func (e *PlacementError) Is(target error) bool {
	return target == ErrIllegalPlacement
}

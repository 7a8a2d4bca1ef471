// Package game implements the rules of Speed, a two-sided shedding game
// played between a terminal player and the computer.
//
// The main type is Game, which owns the two center piles and both sides'
// hands and advances a small turn state machine in response to commands.
//
// # Basic Usage
//
//	g, err := game.New(game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	g.SubmitMenuChoice(game.ChooseLeft)
//	out, err := g.SubmitCardChoice(0)
//	if errors.Is(err, game.ErrIllegalPlacement) {
//	    // card handed back, back at the menu
//	}
//
// A card may be placed on a pile when its rank is one step above or below the
// pile's top rank, wrapping between King and Ace. When neither side can play,
// ComputerTurn breaks the stalemate by burning one card from each side onto
// the piles.
//
// # Deterministic Games
//
// WithSeed shuffles from a fixed seed and WithDeck deals from an explicit card
// order, so any game can be replayed move for move. Inject a quartz mock clock
// with WithClock for stable event timestamps.
//
// # Agents
//
// The computer's strategy is an Agent. GreedyAgent plays the lowest hand slot
// that fits, preferring the left pile; RandomAgent is used by the simulator
// for the player's seat.
package game

package game

import (
	"math/rand/v2"

	"github.com/lox/speed/internal/deck"
)

// Move is a single legal placement: the card in hand slot Index onto Pile
type Move struct {
	Index int
	Pile  PileSide
	Card  deck.Card
}

// View is the read-only state an agent sees when choosing a move
type View struct {
	Left          deck.Card
	Right         deck.Card
	Hand          []deck.Card
	ReserveSize   int
	OpponentCards int // cards the opponent still holds
}

// Agent chooses moves for a seat. Agents receive immutable state plus the
// legal moves in tie-break order and must not mutate the game.
type Agent interface {
	ChooseMove(view View, legal []Move) (Move, bool)
}

// GreedyAgent plays the first legal move: lowest hand slot first, then the
// left pile before the right.
type GreedyAgent struct{}

// ChooseMove returns the first legal move, or false when there is none
func (GreedyAgent) ChooseMove(_ View, legal []Move) (Move, bool) {
	if len(legal) == 0 {
		return Move{}, false
	}
	return legal[0], true
}

// RandomAgent plays a uniformly random legal move
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent creates a RandomAgent drawing from rng
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

// ChooseMove picks one of the legal moves at random
func (r *RandomAgent) ChooseMove(_ View, legal []Move) (Move, bool) {
	if len(legal) == 0 {
		return Move{}, false
	}
	return legal[r.rng.IntN(len(legal))], true
}

// LegalMoves lists every placement of hand onto the two piles, ordered by
// hand slot and then left before right.
func LegalMoves(hand []deck.Card, left, right *Pile) []Move {
	var moves []Move
	for i, card := range hand {
		if left.CanPlace(card) {
			moves = append(moves, Move{Index: i, Pile: Left, Card: card})
		}
		if right.CanPlace(card) {
			moves = append(moves, Move{Index: i, Pile: Right, Card: card})
		}
	}
	return moves
}

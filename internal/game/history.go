package game

import (
	"fmt"
	"strings"

	"github.com/lox/speed/internal/deck"
)

// MoveKind classifies an entry in the move history
type MoveKind int

const (
	MovePlay MoveKind = iota
	MoveReject
	MovePass
	MoveBurn
)

// String returns the string representation of the move kind
func (k MoveKind) String() string {
	switch k {
	case MovePlay:
		return "play"
	case MoveReject:
		return "reject"
	case MovePass:
		return "pass"
	case MoveBurn:
		return "burn"
	default:
		return "unknown"
	}
}

// MoveRecord is one step of a game with the pile tops after it. Two games
// dealt from the same order and fed the same commands produce identical
// records. Pile and Card are only set for plays and burns; a pass leaves them
// zero, so check HasCard before reading them.
type MoveRecord struct {
	Seq      int
	Seat     Seat
	Kind     MoveKind
	Pile     PileSide
	Card     deck.Card
	LeftTop  deck.Card
	RightTop deck.Card
}

// HasCard reports whether Card and Pile are set for this record
func (r MoveRecord) HasCard() bool {
	return r.Kind != MovePass
}

// String renders the record as a single history line
func (r MoveRecord) String() string {
	switch {
	case !r.HasCard():
		return fmt.Sprintf("#%d %s passes [%s | %s]", r.Seq, r.Seat, r.LeftTop.Short(), r.RightTop.Short())
	default:
		return fmt.Sprintf("#%d %s %s %s %s [%s | %s]", r.Seq, r.Seat, r.Kind, r.Card.Short(), r.Pile,
			r.LeftTop.Short(), r.RightTop.Short())
	}
}

// Burn is one card surrendered into the middle during a stalemate
type Burn struct {
	Seat        Seat
	Pile        PileSide
	Card        deck.Card
	FromReserve bool
}

// Summary renders a finished game's history for display
func Summary(id string, seed int64, winner Seat, records []MoveRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** GAME %s ***\n", id)
	if seed != 0 {
		fmt.Fprintf(&b, "Seed: %d\n", seed)
	}
	plays, burns := 0, 0
	for _, r := range records {
		switch r.Kind {
		case MovePlay:
			plays++
		case MoveBurn:
			burns++
		}
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "*** SUMMARY ***\n%s wins (%d plays, %d burns)\n", winner, plays, burns)
	return b.String()
}

package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// StandardSize is the number of cards in a standard deck
const StandardSize = NumSuits * NumRanks

// ErrInsufficientCards is returned when a deal asks for more cards than remain
var ErrInsufficientCards = errors.New("insufficient cards")

// Deck is an ordered collection of cards used as a stack: the last element is
// the top, and cards are dealt from and pushed onto the top. The same type
// backs the draw deck, each reserve and the small active hands.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates an empty deck that shuffles with rng. A nil rng falls back to
// the global math/rand/v2 source.
func New(rng *rand.Rand) *Deck {
	return &Deck{
		cards: make([]Card, 0, StandardSize),
		rng:   rng,
	}
}

// NewStandard creates a deck holding the 52 standard cards in build order
func NewStandard(rng *rand.Rand) *Deck {
	d := New(rng)
	d.BuildStandard()
	return d
}

// FromCards creates a deck with an explicit order; cards[len-1] is the top.
func FromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// BuildStandard fills an empty deck with one card per (suit, rank). It is a
// no-op on a deck that already holds cards.
func (d *Deck) BuildStandard() {
	if len(d.cards) != 0 {
		return
	}
	for rank := Ace; rank <= King; rank++ {
		for _, suit := range []Suit{Diamonds, Spades, Clubs, Hearts} {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of cards in the deck (Fisher-Yates)
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealOne removes and returns the top card
func (d *Deck) DealOne() (Card, bool) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, false
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, true
}

// DealHand removes exactly n cards from the top and returns them as a new
// deck, in the order they were dealt. If n exceeds the cards remaining the
// deck is left untouched and ErrInsufficientCards is returned.
func (d *Deck) DealHand(n int) (*Deck, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("deal %d from %d: %w", n, len(d.cards), ErrInsufficientCards)
	}
	hand := &Deck{cards: make([]Card, 0, n), rng: d.rng}
	for i := 0; i < n; i++ {
		card, _ := d.DealOne()
		hand.cards = append(hand.cards, card)
	}
	return hand, nil
}

// DealRest deals every remaining card into a new deck
func (d *Deck) DealRest() (*Deck, error) {
	return d.DealHand(len(d.cards))
}

// AddCard pushes a card onto the top of the deck
func (d *Deck) AddCard(c Card) {
	d.cards = append(d.cards, c)
}

// RemoveCard removes the first card equal to c, scanning from the bottom.
// Removing a card that is not present is a no-op and returns false.
func (d *Deck) RemoveCard(c Card) bool {
	for i, card := range d.cards {
		if card == c {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return true
		}
	}
	return false
}

// At returns the card at position i (0 is the bottom)
func (d *Deck) At(i int) (Card, bool) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[i], true
}

// RemoveAt removes and returns the card at position i
func (d *Deck) RemoveAt(i int) (Card, bool) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card, true
}

// InsertAt places c at position i, shifting later cards up. Positions past
// the end append.
func (d *Deck) InsertAt(i int, c Card) {
	if i < 0 {
		i = 0
	}
	if i >= len(d.cards) {
		d.cards = append(d.cards, c)
		return
	}
	d.cards = append(d.cards, Card{})
	copy(d.cards[i+1:], d.cards[i:])
	d.cards[i] = c
}

// Contains reports whether c is in the deck
func (d *Deck) Contains(c Card) bool {
	for _, card := range d.cards {
		if card == c {
			return true
		}
	}
	return false
}

// Peek returns the top card without removing it
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Size returns the number of cards in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the cards, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// String lists the cards bottom first, one per line
func (d *Deck) String() string {
	var b strings.Builder
	for _, c := range d.cards {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

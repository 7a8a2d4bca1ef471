package deck

import "fmt"

// Suit represents a card suit. Suits are carried for display only and never
// affect whether a card can be played.
type Suit int

const (
	Clubs Suit = iota
	Hearts
	Spades
	Diamonds
)

// NumSuits is the number of suits in a standard deck
const NumSuits = 4

// String returns the name of the suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	case Diamonds:
		return "Diamonds"
	default:
		return "?"
	}
}

// Symbol returns the unicode symbol of the suit
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the ordinal of a card in the cyclic sequence Ace..King.
// Arithmetic on ranks wraps modulo NumRanks in both directions.
type Rank int

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the length of the rank cycle
const NumRanks = 13

var rankNames = [NumRanks]string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Jack", "Queen", "King",
}

var rankSymbols = [NumRanks]string{
	"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

// Valid reports whether r is one of the 13 ranks
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// String returns the name of the rank
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankNames[r]
}

// Symbol returns the short symbol of the rank ("A", "10", "K")
func (r Rank) Symbol() string {
	if !r.Valid() {
		return "?"
	}
	return rankSymbols[r]
}

// Add returns the rank n steps along the cycle. n may be negative.
func (r Rank) Add(n int) Rank {
	v := (int(r) + n) % NumRanks
	if v < 0 {
		v += NumRanks
	}
	return Rank(v)
}

// Next returns the successor of r; King wraps to Ace.
func (r Rank) Next() Rank {
	return r.Add(1)
}

// Prev returns the predecessor of r; Ace wraps to King.
func (r Rank) Prev() Rank {
	return r.Add(-1)
}

// Distance returns the circular distance between two ranks (0..6)
func (r Rank) Distance(o Rank) int {
	d := int(r.Add(-int(o)))
	if d > NumRanks-d {
		d = NumRanks - d
	}
	return d
}

// IsAdjacent reports whether o is exactly one step from r on the rank cycle
func (r Rank) IsAdjacent(o Rank) bool {
	return r.Distance(o) == 1
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the long form of the card, e.g. "Ace of Spades"
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns the compact form of the card, e.g. "A♠"
func (c Card) Short() string {
	return c.Rank.Symbol() + c.Suit.Symbol()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

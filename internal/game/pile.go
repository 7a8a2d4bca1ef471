package game

import "github.com/lox/speed/internal/deck"

// Pile is one of the two center stacks. Only the top card is visible; the
// pile's rank is always the rank of that card.
type Pile struct {
	top deck.Card
}

// NewPile creates a pile showing card
func NewPile(card deck.Card) *Pile {
	return &Pile{top: card}
}

// Top returns the current top card
func (p *Pile) Top() deck.Card {
	return p.top
}

// Rank returns the rank index of the top card
func (p *Pile) Rank() deck.Rank {
	return p.top.Rank
}

// CanPlace reports whether card is exactly one rank above or below the top,
// wrapping between King and Ace.
func (p *Pile) CanPlace(card deck.Card) bool {
	return p.top.Rank.IsAdjacent(card.Rank)
}

// Place puts card on the pile if it is adjacent to the top. A rejected card
// comes back in a *PlacementError and the pile is unchanged.
func (p *Pile) Place(card deck.Card) error {
	if !p.CanPlace(card) {
		return &PlacementError{Card: card, Top: p.top}
	}
	p.top = card
	return nil
}

// ForceSet replaces the top regardless of rank. Only the stalemate burn uses it.
func (p *Pile) ForceSet(card deck.Card) {
	p.top = card
}

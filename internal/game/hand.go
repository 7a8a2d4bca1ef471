package game

import (
	"fmt"

	"github.com/lox/speed/internal/deck"
)

// ActiveSize is the number of playable cards a side holds while its reserve lasts
const ActiveSize = 5

// Hand holds a side's cards: a small active hand that can be played from, and
// a reserve that refills it one card at a time.
type Hand struct {
	active  *deck.Deck
	reserve *deck.Deck
}

// NewHand deals ActiveSize cards from cards into the active hand and keeps the
// remainder as the reserve.
func NewHand(cards *deck.Deck) (*Hand, error) {
	active, err := cards.DealHand(ActiveSize)
	if err != nil {
		return nil, fmt.Errorf("dealing active hand: %w", err)
	}
	return &Hand{active: active, reserve: cards}, nil
}

// Active returns a copy of the active cards in slot order
func (h *Hand) Active() []deck.Card {
	return h.active.Cards()
}

// Card returns the active card in slot i
func (h *Hand) Card(i int) (deck.Card, bool) {
	return h.active.At(i)
}

// ActiveCount returns the number of active cards
func (h *Hand) ActiveCount() int {
	return h.active.Size()
}

// ReserveSize returns the number of cards left in the reserve
func (h *Hand) ReserveSize() int {
	return h.reserve.Size()
}

// Total returns every card the side still holds
func (h *Hand) Total() int {
	return h.active.Size() + h.reserve.Size()
}

// IsEmpty reports whether both the active hand and reserve are exhausted
func (h *Hand) IsEmpty() bool {
	return h.active.IsEmpty() && h.reserve.IsEmpty()
}

// Play removes the card in slot i and refills that slot from the reserve.
// drew is false once the reserve has run out.
func (h *Hand) Play(i int) (card deck.Card, drew bool, ok bool) {
	card, ok = h.active.RemoveAt(i)
	if !ok {
		return deck.Card{}, false, false
	}
	if next, has := h.reserve.DealOne(); has {
		h.active.InsertAt(i, next)
		drew = true
	}
	return card, drew, true
}

// Surrender gives up one card for a stalemate burn: the reserve top if there
// is one, otherwise the first active card.
func (h *Hand) Surrender() (card deck.Card, fromReserve bool, ok bool) {
	if card, ok := h.reserve.DealOne(); ok {
		return card, true, true
	}
	card, ok = h.active.RemoveAt(0)
	return card, false, ok
}

package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/speed/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart         EventType = "game_start"
	EventTypeCardPlayed        EventType = "card_played"
	EventTypePlacementRejected EventType = "placement_rejected"
	EventTypeComputerPassed    EventType = "computer_passed"
	EventTypeForcedBurn        EventType = "forced_burn"
	EventTypeGameOver          EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the cards are dealt
type GameStartEvent struct {
	GameID    string
	Seed      int64
	Left      deck.Card
	Right     deck.Card
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published when a card is accepted onto a pile
type CardPlayedEvent struct {
	Seat      Seat
	Pile      PileSide
	Card      deck.Card
	Drew      bool
	CardsLeft int
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// PlacementRejectedEvent is published when a card is not adjacent to the pile
type PlacementRejectedEvent struct {
	Seat      Seat
	Pile      PileSide
	Card      deck.Card
	Top       deck.Card
	timestamp time.Time
}

func (e PlacementRejectedEvent) EventType() EventType { return EventTypePlacementRejected }
func (e PlacementRejectedEvent) Timestamp() time.Time { return e.timestamp }

// ComputerPassedEvent is published when the computer has no legal move
type ComputerPassedEvent struct {
	timestamp time.Time
}

func (e ComputerPassedEvent) EventType() EventType { return EventTypeComputerPassed }
func (e ComputerPassedEvent) Timestamp() time.Time { return e.timestamp }

// ForcedBurnEvent is published when a stalemate is broken by burning cards
type ForcedBurnEvent struct {
	Burns     []Burn
	timestamp time.Time
}

func (e ForcedBurnEvent) EventType() EventType { return EventTypeForcedBurn }
func (e ForcedBurnEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published once when a side empties its cards
type GameOverEvent struct {
	GameID    string
	Winner    Seat
	Turns     int
	Burns     int
	Duration  time.Duration
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormatEvent renders an event as a single log line for the terminal
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return fmt.Sprintf("Game %s started. Middle cards: %s | %s", e.GameID, e.Left.Short(), e.Right.Short())
	case CardPlayedEvent:
		line := fmt.Sprintf("%s plays %s on the %s pile", e.Seat, e.Card.Short(), e.Pile)
		if !e.Drew {
			line += fmt.Sprintf(" (%d left)", e.CardsLeft)
		}
		return line
	case PlacementRejectedEvent:
		return fmt.Sprintf("%s cannot go on %s (%s pile)", e.Card.Short(), e.Top.Short(), e.Pile)
	case ComputerPassedEvent:
		return "Computer couldn't play"
	case ForcedBurnEvent:
		parts := make([]string, 0, len(e.Burns))
		for _, b := range e.Burns {
			parts = append(parts, fmt.Sprintf("%s burns %s onto the %s pile", b.Seat, b.Card.Short(), b.Pile))
		}
		return "Stalemate! " + strings.Join(parts, ", ")
	case GameOverEvent:
		return fmt.Sprintf("%s wins after %d plays and %d burns", e.Winner, e.Turns, e.Burns)
	default:
		return event.EventType().String()
	}
}

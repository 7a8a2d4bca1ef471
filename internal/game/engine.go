package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/speed/internal/deck"
	"github.com/lox/speed/internal/gameid"
	"github.com/lox/speed/internal/randutil"
)

// OutcomeKind classifies the result of a command
type OutcomeKind int

const (
	OutcomeAwaitingCard OutcomeKind = iota
	OutcomePlayed
	OutcomeRejected
	OutcomeComputerPassed
	OutcomeForcedBurn
	OutcomeExited
)

// String returns the string representation of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAwaitingCard:
		return "awaiting card"
	case OutcomePlayed:
		return "played"
	case OutcomeRejected:
		return "rejected"
	case OutcomeComputerPassed:
		return "computer passed"
	case OutcomeForcedBurn:
		return "forced burn"
	case OutcomeExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Outcome is the structured result of a command for the UI to render
type Outcome struct {
	Kind     OutcomeKind
	Seat     Seat
	Pile     PileSide
	Card     deck.Card
	Drew     bool
	Burns    []Burn
	GameOver bool
	Winner   Seat
}

// Snapshot is a read-only copy of the visible game state
type Snapshot struct {
	ID              string
	Phase           Phase
	Left            deck.Card
	Right           deck.Card
	PlayerHand      []deck.Card
	PlayerReserve   int
	ComputerHand    []deck.Card
	ComputerReserve int
	Turns           int
	Burns           int
}

type options struct {
	id       string
	seed     int64
	deck     *deck.Deck
	logger   *log.Logger
	clock    quartz.Clock
	bus      EventBus
	computer Agent
}

// Option configures a new game
type Option func(*options)

// WithSeed shuffles the deck from seed so the deal can be replayed
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithDeck deals from d as given, without shuffling. d must hold the 52
// standard cards; its top card is dealt first.
func WithDeck(d *deck.Deck) Option {
	return func(o *options) { o.deck = d }
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the clock used for event timestamps and game duration
func WithClock(clock quartz.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithEventBus publishes game events to bus
func WithEventBus(bus EventBus) Option {
	return func(o *options) { o.bus = bus }
}

// WithComputerAgent replaces the computer's strategy
func WithComputerAgent(agent Agent) Option {
	return func(o *options) { o.computer = agent }
}

// WithID sets the game identifier instead of generating one
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// Game owns the complete state of one game of Speed: two center piles and
// both sides' hands. It is not safe for concurrent use.
type Game struct {
	id       string
	seed     int64
	left     *Pile
	right    *Pile
	hands    [2]*Hand
	starting [2]deck.Card
	phase    Phase
	winner   Seat
	turns    int
	burns    int
	history  []MoveRecord

	computer  Agent
	logger    *log.Logger
	clock     quartz.Clock
	bus       EventBus
	startedAt time.Time
}

// New shuffles and deals a new game. The deck is split into the two starting
// middle cards, the player's half and the computer's rest; each half then
// becomes a five card active hand plus reserve. A broken deal is a setup
// error, never a recoverable one.
func New(opts ...Option) (*Game, error) {
	o := options{
		computer: GreedyAgent{},
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.bus == nil {
		o.bus = NewEventBus()
	}
	if o.id == "" {
		o.id = gameid.Generate()
	}

	d := o.deck
	if d == nil {
		o.seed = randutil.Seed(o.seed)
		d = deck.NewStandard(randutil.New(o.seed))
		d.Shuffle()
	} else {
		o.seed = 0
		if err := validateDeck(d); err != nil {
			return nil, err
		}
	}

	g := &Game{
		id:       o.id,
		seed:     o.seed,
		computer: o.computer,
		logger:   o.logger.WithPrefix("game").With("game", o.id),
		clock:    o.clock,
		bus:      o.bus,
		phase:    AwaitingMenuChoice,
	}
	if err := g.deal(d); err != nil {
		return nil, err
	}

	g.startedAt = g.clock.Now()
	g.logger.Info("Game dealt",
		"seed", g.seed,
		"left", g.left.Top(),
		"right", g.right.Top())
	g.bus.Publish(GameStartEvent{
		GameID:    g.id,
		Seed:      g.seed,
		Left:      g.left.Top(),
		Right:     g.right.Top(),
		timestamp: g.startedAt,
	})

	return g, nil
}

func validateDeck(d *deck.Deck) error {
	if d.Size() != deck.StandardSize {
		return fmt.Errorf("%w: deck has %d cards, want %d", ErrSetup, d.Size(), deck.StandardSize)
	}
	seen := make(map[deck.Card]bool, deck.StandardSize)
	for _, c := range d.Cards() {
		if !c.Rank.Valid() || c.Suit < deck.Clubs || c.Suit > deck.Diamonds {
			return fmt.Errorf("%w: invalid card %v", ErrSetup, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate card %s", ErrSetup, c)
		}
		seen[c] = true
	}
	return nil
}

func (g *Game) deal(d *deck.Deck) error {
	startingTwo, err := d.DealHand(2)
	if err != nil {
		return fmt.Errorf("%w: starting cards: %w", ErrSetup, err)
	}
	playerHalf, err := d.DealHand(d.Size() / 2)
	if err != nil {
		return fmt.Errorf("%w: player half: %w", ErrSetup, err)
	}
	computerRest, err := d.DealRest()
	if err != nil {
		return fmt.Errorf("%w: computer half: %w", ErrSetup, err)
	}

	for seat, cards := range []*deck.Deck{playerHalf, computerRest} {
		hand, err := NewHand(cards)
		if err != nil {
			return fmt.Errorf("%w: %s hand: %w", ErrSetup, Seat(seat), err)
		}
		g.hands[seat] = hand
	}

	left, _ := startingTwo.At(0)
	right, _ := startingTwo.At(1)
	g.starting = [2]deck.Card{left, right}
	g.left = NewPile(left)
	g.right = NewPile(right)
	return nil
}

// ID returns the game identifier
func (g *Game) ID() string { return g.id }

// Seed returns the shuffle seed, or 0 for a game dealt from an explicit deck
func (g *Game) Seed() int64 { return g.seed }

// Phase returns the current state of the turn state machine
func (g *Game) Phase() Phase { return g.phase }

// IsOver reports whether the game has reached a terminal phase
func (g *Game) IsOver() bool { return g.phase.IsTerminal() }

// Winner returns the winning seat once a side has emptied its cards
func (g *Game) Winner() (Seat, bool) {
	if g.phase != PlayerWon && g.phase != ComputerWon {
		return 0, false
	}
	return g.winner, true
}

// Turns returns the number of cards successfully played
func (g *Game) Turns() int { return g.turns }

// Burns returns the number of cards burned to break stalemates
func (g *Game) Burns() int { return g.burns }

// StartingCards returns the two cards the center piles were dealt with
func (g *Game) StartingCards() (deck.Card, deck.Card) {
	return g.starting[0], g.starting[1]
}

// MiddleCards returns the top cards of the left and right piles
func (g *Game) MiddleCards() (deck.Card, deck.Card) {
	return g.left.Top(), g.right.Top()
}

func (g *Game) pile(side PileSide) *Pile {
	if side == Right {
		return g.right
	}
	return g.left
}

// ActiveHand returns the playable cards of seat in slot order
func (g *Game) ActiveHand(seat Seat) []deck.Card {
	return g.hands[seat].Active()
}

// ReserveSize returns the number of reserve cards seat still holds
func (g *Game) ReserveSize(seat Seat) int {
	return g.hands[seat].ReserveSize()
}

// CardsLeft returns every card seat still holds
func (g *Game) CardsLeft(seat Seat) int {
	return g.hands[seat].Total()
}

// Playable returns the legal moves for seat against the current piles
func (g *Game) Playable(seat Seat) []Move {
	return LegalMoves(g.hands[seat].Active(), g.left, g.right)
}

// History returns a copy of every move made so far
func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// Summary renders the move history of the game
func (g *Game) Summary() string {
	return Summary(g.id, g.seed, g.winner, g.history)
}

// Snapshot returns a copy of the visible state
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:              g.id,
		Phase:           g.phase,
		Left:            g.left.Top(),
		Right:           g.right.Top(),
		PlayerHand:      g.hands[Human].Active(),
		PlayerReserve:   g.hands[Human].ReserveSize(),
		ComputerHand:    g.hands[Computer].Active(),
		ComputerReserve: g.hands[Computer].ReserveSize(),
		Turns:           g.turns,
		Burns:           g.burns,
	}
}

// ParseMenuChoice parses terminal input into a menu choice
func ParseMenuChoice(input string) (MenuChoice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCommand, input)
	}
	choice := MenuChoice(n)
	if choice < ChooseLeft || choice > Exit {
		return 0, fmt.Errorf("%w: menu choice %d out of range", ErrInvalidCommand, n)
	}
	return choice, nil
}

// ParseCardChoice parses terminal input into a hand slot index
func ParseCardChoice(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCommand, input)
	}
	return n, nil
}

// SubmitMenuChoice handles a top-level command: choose the left or right pile
// for the next card, let the computer move, or exit. Invalid choices change
// nothing.
func (g *Game) SubmitMenuChoice(choice MenuChoice) (Outcome, error) {
	if g.IsOver() {
		return Outcome{}, ErrGameOver
	}

	switch choice {
	case ChooseLeft:
		g.phase = AwaitingCardLeft
		return Outcome{Kind: OutcomeAwaitingCard, Seat: Human, Pile: Left}, nil
	case ChooseRight:
		g.phase = AwaitingCardRight
		return Outcome{Kind: OutcomeAwaitingCard, Seat: Human, Pile: Right}, nil
	case ComputerMove:
		return g.ComputerTurn()
	case Exit:
		g.phase = Exited
		g.logger.Info("Player exited", "turns", g.turns)
		return Outcome{Kind: OutcomeExited, Seat: Human}, nil
	default:
		return Outcome{}, fmt.Errorf("%w: menu choice %d", ErrInvalidCommand, int(choice))
	}
}

// CancelCardChoice abandons a pending pile choice
func (g *Game) CancelCardChoice() {
	if g.phase == AwaitingCardLeft || g.phase == AwaitingCardRight {
		g.phase = AwaitingMenuChoice
	}
}

// SubmitCardChoice plays the player's card in slot index onto the pile chosen
// by the previous menu command. An out of range index leaves the game waiting
// for another index. A card that does not fit is handed back, nothing is
// drawn, and the game returns to the menu.
func (g *Game) SubmitCardChoice(index int) (Outcome, error) {
	if g.IsOver() {
		return Outcome{}, ErrGameOver
	}

	var side PileSide
	switch g.phase {
	case AwaitingCardLeft:
		side = Left
	case AwaitingCardRight:
		side = Right
	default:
		return Outcome{}, fmt.Errorf("%w: choose a pile before a card", ErrInvalidCommand)
	}

	hand := g.hands[Human]
	card, ok := hand.Card(index)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: card %d not in hand of %d", ErrInvalidCommand, index, hand.ActiveCount())
	}

	g.phase = AwaitingMenuChoice
	pile := g.pile(side)
	if err := pile.Place(card); err != nil {
		g.logger.Debug("Placement rejected", "card", card, "pile", side, "top", pile.Top())
		g.record(Human, MoveReject, side, card)
		g.bus.Publish(PlacementRejectedEvent{
			Seat:      Human,
			Pile:      side,
			Card:      card,
			Top:       pile.Top(),
			timestamp: g.clock.Now(),
		})
		return Outcome{Kind: OutcomeRejected, Seat: Human, Pile: side, Card: card}, err
	}

	return g.completePlay(Human, side, index), nil
}

// ComputerTurn lets the computer make one placement, choosing the lowest hand
// slot that fits and the left pile before the right. If the computer cannot
// play and neither can the player, both sides burn a card into the middle.
func (g *Game) ComputerTurn() (Outcome, error) {
	if g.IsOver() {
		return Outcome{}, ErrGameOver
	}
	g.phase = AwaitingMenuChoice

	legal := g.Playable(Computer)
	if len(legal) == 0 {
		g.logger.Debug("Computer couldn't play", "left", g.left.Top(), "right", g.right.Top())
		g.record(Computer, MovePass, Left, deck.Card{})
		g.bus.Publish(ComputerPassedEvent{timestamp: g.clock.Now()})

		if len(g.Playable(Human)) == 0 {
			return g.forcedBurn(), nil
		}
		return Outcome{Kind: OutcomeComputerPassed, Seat: Computer}, nil
	}

	move, ok := g.computer.ChooseMove(g.view(Computer), legal)
	if !ok || !containsMove(legal, move) {
		g.logger.Error("Computer chose an illegal move, using first legal move", "move", move, "ok", ok)
		move = legal[0]
	}

	pile := g.pile(move.Pile)
	if err := pile.Place(move.Card); err != nil {
		// legal moves were computed against these piles
		return Outcome{}, fmt.Errorf("computer move %+v: %w", move, err)
	}
	return g.completePlay(Computer, move.Pile, move.Index), nil
}

func (g *Game) completePlay(seat Seat, side PileSide, index int) Outcome {
	hand := g.hands[seat]
	card, drew, _ := hand.Play(index)
	g.turns++
	g.record(seat, MovePlay, side, card)

	g.logger.Debug("Card played",
		"seat", seat,
		"card", card,
		"pile", side,
		"drew", drew,
		"cardsLeft", hand.Total())
	g.bus.Publish(CardPlayedEvent{
		Seat:      seat,
		Pile:      side,
		Card:      card,
		Drew:      drew,
		CardsLeft: hand.Total(),
		timestamp: g.clock.Now(),
	})

	out := Outcome{Kind: OutcomePlayed, Seat: seat, Pile: side, Card: card, Drew: drew}
	if hand.IsEmpty() {
		g.finish(seat)
		g.publishGameOver()
		out.GameOver = true
		out.Winner = seat
	}
	return out
}

// forcedBurn breaks a stalemate. The player burns first onto the left pile,
// then the computer onto the right pile. Each side gives up its reserve top,
// or its first active card once the reserve is empty.
func (g *Game) forcedBurn() Outcome {
	out := Outcome{Kind: OutcomeForcedBurn}

	for _, b := range []struct {
		seat Seat
		side PileSide
	}{{Human, Left}, {Computer, Right}} {
		hand := g.hands[b.seat]
		card, fromReserve, ok := hand.Surrender()
		if !ok {
			// A side with nothing left to burn cannot break the stalemate
			g.finish(b.seat.Opponent())
			out.GameOver = true
			out.Winner = b.seat.Opponent()
			break
		}

		g.pile(b.side).ForceSet(card)
		g.burns++
		g.record(b.seat, MoveBurn, b.side, card)
		out.Burns = append(out.Burns, Burn{Seat: b.seat, Pile: b.side, Card: card, FromReserve: fromReserve})
		g.logger.Info("Card burned", "seat", b.seat, "card", card, "pile", b.side, "fromReserve", fromReserve)

		if hand.IsEmpty() {
			g.finish(b.seat)
			out.GameOver = true
			out.Winner = b.seat
			break
		}
	}

	g.bus.Publish(ForcedBurnEvent{Burns: out.Burns, timestamp: g.clock.Now()})
	if out.GameOver {
		g.publishGameOver()
	}
	return out
}

func (g *Game) finish(winner Seat) {
	g.winner = winner
	if winner == Human {
		g.phase = PlayerWon
	} else {
		g.phase = ComputerWon
	}
	g.logger.Info("Game over", "winner", winner, "turns", g.turns, "burns", g.burns)
}

func (g *Game) publishGameOver() {
	g.bus.Publish(GameOverEvent{
		GameID:    g.id,
		Winner:    g.winner,
		Turns:     g.turns,
		Burns:     g.burns,
		Duration:  g.clock.Since(g.startedAt),
		timestamp: g.clock.Now(),
	})
}

func (g *Game) record(seat Seat, kind MoveKind, side PileSide, card deck.Card) {
	g.history = append(g.history, MoveRecord{
		Seq:      len(g.history) + 1,
		Seat:     seat,
		Kind:     kind,
		Pile:     side,
		Card:     card,
		LeftTop:  g.left.Top(),
		RightTop: g.right.Top(),
	})
}

func (g *Game) view(seat Seat) View {
	return View{
		Left:          g.left.Top(),
		Right:         g.right.Top(),
		Hand:          g.hands[seat].Active(),
		ReserveSize:   g.hands[seat].ReserveSize(),
		OpponentCards: g.hands[seat.Opponent()].Total(),
	}
}

func containsMove(moves []Move, m Move) bool {
	for _, legal := range moves {
		if legal == m {
			return true
		}
	}
	return false
}

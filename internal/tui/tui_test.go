package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/speed/internal/deck"
	"github.com/lox/speed/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestModel(t *testing.T, opts Options, gameOpts ...game.Option) *Model {
	t.Helper()
	opts.TestMode = true
	if opts.Clock == nil {
		opts.Clock = quartz.NewMock(t)
	}
	m, err := NewModel(quietLogger(), opts, gameOpts...)
	require.NoError(t, err)
	return m
}

func lastEntry(t *testing.T, m *Model) string {
	t.Helper()
	captured := m.GetCapturedLog()
	require.NotEmpty(t, captured)
	return captured[len(captured)-1]
}

func logContains(m *Model, substr string) bool {
	for _, entry := range m.GetCapturedLog() {
		if strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}

// stackedDeck deals Ac/Ad to the middle and the given active hands
func stackedDeck(t *testing.T, computer, player string) *deck.Deck {
	t.Helper()
	top, err := deck.ParseCards(computer)
	require.NoError(t, err)
	mine, err := deck.ParseCards(player)
	require.NoError(t, err)
	ac, _ := deck.ParseCard("Ac")
	ad, _ := deck.ParseCard("Ad")

	used := map[deck.Card]bool{ac: true, ad: true}
	for _, c := range append(append([]deck.Card{}, top...), mine...) {
		used[c] = true
	}
	var spare []deck.Card
	for _, c := range deck.NewStandard(nil).Cards() {
		if !used[c] {
			spare = append(spare, c)
		}
	}

	cards := make([]deck.Card, 0, deck.StandardSize)
	cards = append(cards, top...)
	cards = append(cards, spare[:20]...)
	cards = append(cards, mine...)
	cards = append(cards, spare[20:]...)
	cards = append(cards, ad, ac)
	return deck.FromCards(cards)
}

// stalemateDeck leaves neither side a card to play on Ac/Ad
func stalemateDeck(t *testing.T) *deck.Deck {
	return stackedDeck(t, "5d 6d 7d 8d 9d", "5c 6c 7c 8c 9c")
}

func TestTUITestMode(t *testing.T) {
	t.Run("test mode captures log entries", func(t *testing.T) {
		m := newTestModel(t, Options{}, game.WithSeed(7), game.WithID("g1"))

		assert.True(t, m.IsTestMode())
		captured := m.GetCapturedLog()
		require.Len(t, captured, 2)
		assert.Contains(t, captured[0], "Game g1 started")
		assert.Equal(t, "Type help for commands", captured[1])
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		m, err := NewModel(quietLogger(), Options{}, game.WithSeed(7))
		require.NoError(t, err)

		assert.False(t, m.IsTestMode())
		m.AddLogEntry("Some log entry")
		assert.Nil(t, m.GetCapturedLog())
	})

	t.Run("setup errors are returned", func(t *testing.T) {
		_, err := NewModel(quietLogger(), Options{}, game.WithDeck(deck.New(nil)))
		assert.ErrorIs(t, err, game.ErrSetup)
	})
}

func TestHandleInputPlaysCard(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithSeed(11))
	g := m.Game()

	var move game.Move
	for seed := int64(11); ; seed++ {
		if moves := g.Playable(game.Human); len(moves) > 0 {
			move = moves[0]
			break
		}
		require.Less(t, seed, int64(60), "no seed with an opening move")
		m = newTestModel(t, Options{}, game.WithSeed(seed+1))
		g = m.Game()
	}

	assert.Nil(t, m.HandleInput(string(rune('0'+int(game.ChoiceFor(move.Pile))))))
	assert.Equal(t, game.ChoiceFor(move.Pile) == game.ChooseLeft, g.Phase() == game.AwaitingCardLeft)

	assert.Nil(t, m.HandleInput(string(rune('0'+move.Index))))
	assert.Equal(t, game.AwaitingMenuChoice, g.Phase())
	assert.Equal(t, 1, g.Turns())
	assert.Contains(t, lastEntry(t, m), "Player plays "+move.Card.Short())
}

func TestHandleInputRejectsIllegalCard(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithDeck(stalemateDeck(t)))
	g := m.Game()
	before := g.ActiveHand(game.Human)

	m.HandleInput("0")
	m.HandleInput("2")

	assert.Equal(t, game.AwaitingMenuChoice, g.Phase())
	assert.Equal(t, before, g.ActiveHand(game.Human))
	assert.Equal(t, "7♣ cannot go on A♣ (left pile)", lastEntry(t, m))
}

func TestHandleInputInvalidCommands(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithSeed(3))
	g := m.Game()

	m.HandleInput("9")
	assert.Contains(t, lastEntry(t, m), "invalid command")
	assert.Equal(t, game.AwaitingMenuChoice, g.Phase())

	m.HandleInput("left")
	assert.Contains(t, lastEntry(t, m), "invalid command")

	m.HandleInput("1")
	m.HandleInput("12")
	assert.Contains(t, lastEntry(t, m), "invalid command")
	assert.Equal(t, game.AwaitingCardRight, g.Phase(), "still waiting for a card")

	m.HandleInput("b")
	assert.Equal(t, game.AwaitingMenuChoice, g.Phase())
}

func TestHandleInputComputerMoveAndBurn(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithDeck(stalemateDeck(t)))
	g := m.Game()

	assert.Nil(t, m.HandleInput("2"))
	assert.True(t, logContains(m, "Computer couldn't play"))
	assert.True(t, logContains(m, "Stalemate! Player burns"))
	assert.Equal(t, 2, g.Burns())
}

func TestHandleInputExit(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithSeed(3))

	cmd := m.HandleInput("3")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
	assert.Equal(t, game.Exited, m.Game().Phase())
}

func TestHandleInputCommands(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithSeed(3))

	m.HandleInput("history")
	assert.Equal(t, "No moves yet", lastEntry(t, m))

	m.HandleInput("HAND")
	assert.Contains(t, lastEntry(t, m), "Your hand: 0:")
	assert.Contains(t, lastEntry(t, m), "(20 in reserve)")

	m.HandleInput("help")
	assert.True(t, logContains(m, "let the computer move"))

	m.HandleInput("2")
	m.HandleInput("history")
	assert.True(t, logContains(m, "#1 Computer"))

	cmd := m.HandleInput("quit")
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
}

func TestPlayingToTheEnd(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithSeed(21))
	g := m.Game()

	for i := 0; !g.IsOver(); i++ {
		require.Less(t, i, 300)
		if moves := g.Playable(game.Human); len(moves) > 0 {
			m.HandleInput(string(rune('0' + int(game.ChoiceFor(moves[0].Pile)))))
			m.HandleInput(string(rune('0' + moves[0].Index)))
			continue
		}
		m.HandleInput("2")
	}

	winner, ok := g.Winner()
	require.True(t, ok)
	if winner == game.Human {
		assert.Equal(t, "You win! Press Enter to exit.", lastEntry(t, m))
	} else {
		assert.Equal(t, "The computer wins. Press Enter to exit.", lastEntry(t, m))
	}

	cmd := m.HandleInput("")
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
}

func TestUpdateKeyInput(t *testing.T) {
	m := newTestModel(t, Options{}, game.WithSeed(5))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.AwaitingCardRight, m.Game().Phase())
	assert.Empty(t, m.input.Value(), "input cleared after submit")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.AwaitingCardRight, m.Game().Phase(), "enter ignored while the log is focused")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestView(t *testing.T) {
	SetColor(false)
	t.Cleanup(func() { SetColor(false) })

	m := newTestModel(t, Options{}, game.WithDeck(stalemateDeck(t)))
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	assert.Contains(t, view, "SPEED")
	assert.Contains(t, view, "A♣")
	assert.Contains(t, view, "A♦")
	assert.Contains(t, view, "0:5♣")
	assert.Contains(t, view, "Computer: 25 cards")
	assert.Contains(t, view, "[2] Let computer move")

	m.HandleInput("1")
	assert.Contains(t, m.View(), "Which card for the right pile? (0-4")
}

func TestComputerAutoPlay(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	m := newTestModel(t, Options{ComputerDelay: time.Second, Clock: clock}, game.WithDeck(stalemateDeck(t)))

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- m.scheduleComputer()() }()

	require.Eventually(t, func() bool {
		_, ok := clock.Peek()
		return ok
	}, time.Second, time.Millisecond)
	clock.Advance(time.Second).MustWait(ctx)

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-ctx.Done():
		t.Fatal("computer tick never fired")
	}
	require.IsType(t, computerTickMsg{}, msg)

	m.HandleInput("0") // choose left, then let the tick interrupt
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "next tick scheduled")
	assert.Equal(t, 2, m.Game().Burns(), "stalemate broken by the timed move")
	assert.Equal(t, game.AwaitingCardLeft, m.Game().Phase(), "pending pile choice kept")
}

func TestComputerAutoPlayWaitsForPlayer(t *testing.T) {
	m := newTestModel(t, Options{ComputerDelay: time.Second},
		game.WithDeck(stackedDeck(t, "5d 6d 7d 8d 9d", "5c 6c 7c 8c 2c")))
	g := m.Game()
	require.Empty(t, g.Playable(game.Computer))
	require.NotEmpty(t, g.Playable(game.Human))

	_, cmd := m.Update(computerTickMsg{})
	assert.NotNil(t, cmd, "keeps ticking")
	assert.Empty(t, g.History(), "no pass logged while only the player can move")
}

func TestInitSchedulesComputer(t *testing.T) {
	assert.NotNil(t, newTestModel(t, Options{}, game.WithSeed(1)).Init())
	assert.NotNil(t, newTestModel(t, Options{ComputerDelay: time.Second}, game.WithSeed(1)).Init())
}

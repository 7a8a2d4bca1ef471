package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/speed/internal/randutil"
)

func TestLegalMovesOrder(t *testing.T) {
	left := NewPile(one(t, "2h"))
	right := NewPile(one(t, "4h"))
	hand := cards(t, "9c 3d Ks 5s Ac")

	moves := LegalMoves(hand, left, right)
	assert.Equal(t, []Move{
		{Index: 1, Pile: Left, Card: one(t, "3d")},
		{Index: 1, Pile: Right, Card: one(t, "3d")},
		{Index: 3, Pile: Right, Card: one(t, "5s")},
		{Index: 4, Pile: Left, Card: one(t, "Ac")},
	}, moves)
}

func TestLegalMovesNone(t *testing.T) {
	moves := LegalMoves(cards(t, "5c 6c 7c"), NewPile(one(t, "Ac")), NewPile(one(t, "Ad")))
	assert.Empty(t, moves)
	assert.Empty(t, LegalMoves(nil, NewPile(one(t, "Ac")), NewPile(one(t, "Ad"))))
}

func TestGreedyAgent(t *testing.T) {
	var agent GreedyAgent

	_, ok := agent.ChooseMove(View{}, nil)
	assert.False(t, ok)

	legal := []Move{
		{Index: 2, Pile: Right},
		{Index: 0, Pile: Left},
	}
	move, ok := agent.ChooseMove(View{}, legal)
	require.True(t, ok)
	assert.Equal(t, legal[0], move)
}

func TestRandomAgentPicksLegalMoves(t *testing.T) {
	agent := NewRandomAgent(randutil.New(7))

	_, ok := agent.ChooseMove(View{}, nil)
	assert.False(t, ok)

	legal := []Move{
		{Index: 0, Pile: Left},
		{Index: 1, Pile: Right},
		{Index: 4, Pile: Left},
	}
	seen := make(map[Move]bool)
	for i := 0; i < 200; i++ {
		move, ok := agent.ChooseMove(View{}, legal)
		require.True(t, ok)
		require.Contains(t, legal, move)
		seen[move] = true
	}
	assert.Len(t, seen, len(legal), "every legal move should come up")
}

func TestRandomAgentIsDeterministic(t *testing.T) {
	legal := []Move{{Index: 0}, {Index: 1}, {Index: 2}, {Index: 3}}
	a := NewRandomAgent(randutil.New(99))
	b := NewRandomAgent(randutil.New(99))
	for i := 0; i < 20; i++ {
		ma, _ := a.ChooseMove(View{}, legal)
		mb, _ := b.ChooseMove(View{}, legal)
		assert.Equal(t, ma, mb)
	}
}

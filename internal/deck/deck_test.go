package deck

import (
	"testing"

	"github.com/lox/speed/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStandard(t *testing.T) {
	d := NewStandard(randutil.New(42))
	require.Equal(t, StandardSize, d.Size())

	seen := make(map[Card]bool)
	perRank := make(map[Rank]int)
	perSuit := make(map[Suit]int)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
		perRank[c.Rank]++
		perSuit[c.Suit]++
	}

	assert.Len(t, perRank, NumRanks)
	assert.Len(t, perSuit, NumSuits)
	for r, n := range perRank {
		assert.Equal(t, NumSuits, n, "rank %s", r)
	}
	for s, n := range perSuit {
		assert.Equal(t, NumRanks, n, "suit %s", s)
	}
}

func TestBuildStandardOnNonEmptyDeckIsNoop(t *testing.T) {
	d := New(nil)
	d.AddCard(NewCard(Hearts, Five))
	d.BuildStandard()
	assert.Equal(t, 1, d.Size())

	d = NewStandard(nil)
	d.BuildStandard()
	assert.Equal(t, StandardSize, d.Size())
}

func TestShufflePreservesCards(t *testing.T) {
	for _, size := range []int{0, 1, 2, 7, StandardSize} {
		d := NewStandard(randutil.New(int64(size)))
		for d.Size() > size {
			d.DealOne()
		}
		before := d.Cards()

		d.Shuffle()

		assert.ElementsMatch(t, before, d.Cards(), "size %d", size)
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	d := NewStandard(randutil.New(7))
	before := d.Cards()
	d.Shuffle()
	assert.NotEqual(t, before, d.Cards())
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := NewStandard(randutil.New(99))
	b := NewStandard(randutil.New(99))
	a.Shuffle()
	b.Shuffle()
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestDealOne(t *testing.T) {
	d := NewStandard(nil)
	top, ok := d.Peek()
	require.True(t, ok)

	card, ok := d.DealOne()
	require.True(t, ok)
	assert.Equal(t, top, card)
	assert.Equal(t, StandardSize-1, d.Size())
	assert.False(t, d.Contains(card))

	for !d.IsEmpty() {
		d.DealOne()
	}
	_, ok = d.DealOne()
	assert.False(t, ok, "deal from empty deck should fail")
}

func TestDealHand(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		n       int
		wantErr bool
	}{
		{"exact", 5, 5, false},
		{"fewer", 10, 3, false},
		{"zero", 4, 0, false},
		{"too many", 3, 4, true},
		{"from empty", 0, 1, true},
		{"negative", 3, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewStandard(nil)
			for d.Size() > tt.size {
				d.DealOne()
			}
			before := d.Cards()

			hand, err := d.DealHand(tt.n)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInsufficientCards)
				assert.Nil(t, hand)
				assert.Equal(t, before, d.Cards(), "deck must be unchanged")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.n, hand.Size())
			assert.Equal(t, tt.size-tt.n, d.Size())
			assert.ElementsMatch(t, before, append(d.Cards(), hand.Cards()...))
		})
	}
}

func TestDealHandTakesFromTop(t *testing.T) {
	d := FromCards([]Card{
		NewCard(Clubs, Two),
		NewCard(Clubs, Three),
		NewCard(Clubs, Four),
	})

	hand, err := d.DealHand(2)
	require.NoError(t, err)
	assert.Equal(t, []Card{NewCard(Clubs, Four), NewCard(Clubs, Three)}, hand.Cards())
	assert.Equal(t, []Card{NewCard(Clubs, Two)}, d.Cards())
}

func TestDealRest(t *testing.T) {
	d := NewStandard(nil)
	rest, err := d.DealRest()
	require.NoError(t, err)
	assert.Equal(t, StandardSize, rest.Size())
	assert.True(t, d.IsEmpty())

	rest, err = d.DealRest()
	require.NoError(t, err)
	assert.Equal(t, 0, rest.Size())
}

func TestOriginalSplit(t *testing.T) {
	d := NewStandard(randutil.New(1))
	d.Shuffle()

	startingTwo, err := d.DealHand(2)
	require.NoError(t, err)
	player, err := d.DealHand(d.Size() / 2)
	require.NoError(t, err)
	computer, err := d.DealRest()
	require.NoError(t, err)

	assert.Equal(t, 2, startingTwo.Size())
	assert.Equal(t, 25, player.Size())
	assert.Equal(t, 25, computer.Size())
	assert.True(t, d.IsEmpty())
}

func TestAddAndRemoveCard(t *testing.T) {
	d := New(nil)
	fiveHearts := NewCard(Hearts, Five)
	kingClubs := NewCard(Clubs, King)

	d.AddCard(fiveHearts)
	d.AddCard(kingClubs)
	d.AddCard(fiveHearts)

	top, _ := d.Peek()
	assert.Equal(t, fiveHearts, top)

	assert.True(t, d.RemoveCard(fiveHearts))
	assert.Equal(t, []Card{kingClubs, fiveHearts}, d.Cards())

	assert.False(t, d.RemoveCard(NewCard(Spades, Ace)))
	assert.Equal(t, 2, d.Size())
}

func TestSlotOperations(t *testing.T) {
	a := NewCard(Clubs, Ace)
	b := NewCard(Clubs, Two)
	c := NewCard(Clubs, Three)
	d := FromCards([]Card{a, b, c})

	got, ok := d.At(1)
	require.True(t, ok)
	assert.Equal(t, b, got)
	_, ok = d.At(3)
	assert.False(t, ok)

	removed, ok := d.RemoveAt(1)
	require.True(t, ok)
	assert.Equal(t, b, removed)
	assert.Equal(t, []Card{a, c}, d.Cards())

	d.InsertAt(1, b)
	assert.Equal(t, []Card{a, b, c}, d.Cards())

	d.InsertAt(10, removed)
	assert.Equal(t, []Card{a, b, c, b}, d.Cards())

	_, ok = d.RemoveAt(-1)
	assert.False(t, ok)
}

func TestCardsReturnsCopy(t *testing.T) {
	d := NewStandard(nil)
	cards := d.Cards()
	cards[0] = NewCard(Hearts, King)
	first, _ := d.At(0)
	assert.Equal(t, NewCard(Diamonds, Ace), first)
}

package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/randutil"
)

func TestDeckDrawWithoutReplacement(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(42))

	seen := make(map[Card]bool)
	for _, n := range []int{2, 3, 47} {
		cards, err := deck.Draw(n)
		require.NoError(t, err)
		require.Len(t, cards, n)
		for _, c := range cards {
			require.True(t, c.Valid())
			require.False(t, seen[c], "dealt %s twice", c)
			seen[c] = true
		}
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, 0, deck.Remaining())

	_, err := deck.Draw(1)
	require.ErrorIs(t, err, ErrDeckExhausted)
}

func TestDeckExhaustedDrawsNothing(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(7))
	_, err := deck.Draw(50)
	require.NoError(t, err)

	_, err = deck.Draw(3)
	require.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, 2, deck.Remaining(), "failed draw must not consume cards")

	_, err = deck.Draw(-1)
	require.Error(t, err)
}

func TestDeckResetRestoresCanonicalOrder(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(1))
	_, err := deck.Draw(10)
	require.NoError(t, err)

	deck.Reset()
	require.Equal(t, 52, deck.Remaining())
	cards, err := deck.Draw(52)
	require.NoError(t, err)
	for i, c := range cards {
		assert.Equal(t, NewCard(uint8(i%13), uint8(i/13)), c)
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	t.Parallel()
	a, err := NewDeck(randutil.New(99)).Draw(52)
	require.NoError(t, err)
	b, err := NewDeck(randutil.New(99)).Draw(52)
	require.NoError(t, err)
	c, err := NewDeck(randutil.New(100)).Draw(52)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed must produce the same order")
	assert.NotEqual(t, a, c, "different seeds should differ")
}

func TestDeckShuffleIsRoughlyUniform(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)
	const trials = 5200
	aceSpades := NewCard(Ace, Spades)
	var top int
	for range trials {
		d := NewDeck(rng)
		cards, err := d.Draw(1)
		require.NoError(t, err)
		if cards[0] == aceSpades {
			top++
		}
	}
	// Expected 100; allow a wide margin.
	assert.InDelta(t, trials/52, top, 45)
}

func TestOrderedDeck(t *testing.T) {
	t.Parallel()
	want := MustParseCards("As Kd 2c")
	deck := NewOrderedDeck(want...)
	deck.Shuffle()

	got, err := deck.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = deck.Draw(1)
	require.ErrorIs(t, err, ErrDeckExhausted)
}

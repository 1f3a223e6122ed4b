package poker

import (
	"math/rand/v2"
	"slices"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/randutil"
)

func mustEval(t *testing.T, s string) HandValue {
	t.Helper()
	v, err := Evaluate(MustParseCards(s))
	require.NoError(t, err, s)
	return v
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  HandType
		ranks [5]int
		desc  string
	}{
		{"As Ks Qs Js Ts 2c 3d", StraightFlush, [5]int{14}, "Royal Flush"},
		{"9h 8h 7h 6h 5h Ah Kd", StraightFlush, [5]int{9}, "Straight Flush, Nine high"},
		{"Ah 2h 3h 4h 5h", StraightFlush, [5]int{5}, "Straight Flush, Five high"},
		{"Kc Kd Kh Ks 2c 3d 4h", FourOfAKind, [5]int{13, 4}, "Four of a Kind, Kings"},
		{"Kc Kd Kh 4s 4c 3d 2h", FullHouse, [5]int{13, 4}, "Full House, Kings full of Fours"},
		{"Kc Kd Kh 4s 4c 4d 2h", FullHouse, [5]int{13, 4}, "Full House, Kings full of Fours"},
		{"Ac Jc 9c 6c 2c Kd Qd", Flush, [5]int{14, 11, 9, 6, 2}, "Flush, Ace high"},
		{"Ac Kc Qc Jc 9c 8c 2d", Flush, [5]int{14, 13, 12, 11, 9}, "Flush, Ace high"},
		{"Td 9c 8h 7s 6d 2c 2d", Straight, [5]int{10}, "Straight, Ten high"},
		{"Ad 2c 3h 4s 5d Kc Qd", Straight, [5]int{5}, "Straight, Five high"},
		{"Ad Kc Qh Js Td 2c 3d", Straight, [5]int{14}, "Straight, Ace high"},
		{"7c 7d 7h Ks 2d 3c 9d", ThreeOfAKind, [5]int{7, 13, 9}, "Three of a Kind, Sevens"},
		{"6c 6d 4h 4s Ad Ac 9d", TwoPair, [5]int{14, 6, 9}, "Two Pair, Aces and Sixes"},
		{"6c 6d 4h 4s Qd 2c 9d", TwoPair, [5]int{6, 4, 12}, "Two Pair, Sixes and Fours"},
		{"Jc Jd 8h 4s 2d 3c 9d", Pair, [5]int{11, 9, 8, 4}, "Pair of Jacks"},
		{"Ac Qd 8h 4s 2d 3c 9d", HighCard, [5]int{14, 12, 9, 8, 4}, "High Card, Ace"},
		{"Ac Qd 8h 4s 2d", HighCard, [5]int{14, 12, 8, 4, 2}, "High Card, Ace"},
	}

	for _, tc := range tests {
		t.Run(tc.cards, func(t *testing.T) {
			t.Parallel()
			v := mustEval(t, tc.cards)
			assert.Equal(t, tc.want, v.Type())
			assert.Equal(t, tc.ranks, v.Ranks())
			assert.Equal(t, tc.desc, v.String())
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()
	// Strictly descending.
	hands := []string{
		"As Ks Qs Js Ts",
		"Ks Qs Js Ts 9s",
		"6d 5d 4d 3d 2d",
		"5h 4h 3h 2h Ah",
		"Ac Ad Ah As Kd",
		"Ac Ad Ah As 2d",
		"2c 2d 2h 2s Ad",
		"Ac Ad Ah Kc Kd",
		"Kc Kd Kh Ac Ad",
		"Ac Kc Qc Jc 9c",
		"Ac Kc Qc Jc 8c",
		"Ad Kc Qh Js Td",
		"6d 5c 4h 3s 2d",
		"5d 4c 3h 2s Ad",
		"Ac Ad Ah Kc Qd",
		"Ac Ad Kh Kc Qd",
		"Ac Ad Kh Kc Jd",
		"Ac Ad Qh Qc Kd",
		"Ac Ad Kh Qc Jd",
		"Kc Kd Ah Qc Jd",
		"Ac Kd Qh Jc 9d",
		"Ac Kd Qh Jc 8d",
		"7c 5d 4h 3c 2d",
	}
	for i := 1; i < len(hands); i++ {
		hi, lo := mustEval(t, hands[i-1]), mustEval(t, hands[i])
		assert.Equal(t, 1, Compare(hi, lo), "%s should beat %s", hands[i-1], hands[i])
		assert.Equal(t, -1, Compare(lo, hi))
	}
}

func TestEvaluateTies(t *testing.T) {
	t.Parallel()
	a := mustEval(t, "Ac Kd Qh Jc 9d 3c 2d")
	b := mustEval(t, "Ah Ks Qd Js 9h 3d 2c")
	assert.Equal(t, 0, Compare(a, b))

	// Board plays for both.
	c := mustEval(t, "2c 3d Ts Js Qs Ks As")
	d := mustEval(t, "4h 5h Ts Js Qs Ks As")
	assert.Equal(t, c, d)
}

func TestWheel(t *testing.T) {
	t.Parallel()
	wheel := mustEval(t, "Ad 2c 3h 4s 5d")
	sixHigh := mustEval(t, "2c 3h 4s 5d 6c")
	assert.Equal(t, Straight, wheel.Type())
	assert.Equal(t, 1, Compare(sixHigh, wheel))

	// Ace plays low for the wheel and never bridges K-A-2.
	noStraight := mustEval(t, "Qd Kc Ah 2s 3d")
	assert.Equal(t, HighCard, noStraight.Type())

	// Six joins the wheel cards: 6-high beats the wheel.
	both := mustEval(t, "Ad 2c 3h 4s 5d 6h Kc")
	assert.Equal(t, [5]int{6}, both.Ranks())
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	_, err := Evaluate(MustParseCards("As Ks Qs Js"))
	require.ErrorIs(t, err, ErrCardCount)

	_, err = Evaluate(MustParseCards("As Ks Qs Js Ts 9s 8s 7s"))
	require.ErrorIs(t, err, ErrCardCount)

	_, err = Evaluate(MustParseCards("As As Qs Js Ts"))
	require.ErrorIs(t, err, ErrDuplicateCard)

	_, err = Evaluate([]Card{NewCard(Ace, Spades), 0, 3, 4, 5})
	require.ErrorIs(t, err, ErrInvalidCard)

	_, _, err = BestFive(MustParseCards("As Ks"))
	require.ErrorIs(t, err, ErrCardCount)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("Kc 2d Kh 9s Ac 3c Qd")
	orig := slices.Clone(cards)
	_, err := Evaluate(cards)
	require.NoError(t, err)
	_, _, err = BestFive(cards)
	require.NoError(t, err)
	assert.Equal(t, orig, cards)
}

func randomCards(rng *rand.Rand, n int) []Card {
	d := NewDeck(rng)
	cards, _ := d.Draw(n)
	return cards
}

func TestEvaluateOrderInvariance(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	for range 500 {
		n := 5 + rng.IntN(3)
		cards := randomCards(rng, n)
		want, err := Evaluate(cards)
		require.NoError(t, err)
		for range 4 {
			rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
			got, err := Evaluate(cards)
			require.NoError(t, err)
			require.Equal(t, want, got, "order changed value for %s", FormatCards(cards))
		}
	}
}

func TestEvaluateSuitRelabelling(t *testing.T) {
	t.Parallel()
	rng := randutil.New(12)
	isFlush := func(v HandValue) bool { return v.Type() == Flush || v.Type() == StraightFlush }

	for range 1000 {
		cards := randomCards(rng, 7)
		before, err := Evaluate(cards)
		require.NoError(t, err)

		// Reassign suits at random keeping ranks and distinctness.
		relabelled := make([]Card, 0, 7)
		var used Hand
		for _, c := range cards {
			for {
				nc := NewCard(c.Rank(), uint8(rng.IntN(4)))
				if !used.HasCard(nc) {
					used.AddCard(nc)
					relabelled = append(relabelled, nc)
					break
				}
			}
		}
		after, err := Evaluate(relabelled)
		require.NoError(t, err)

		if !isFlush(before) && !isFlush(after) {
			require.Equal(t, before, after, "%s vs %s", FormatCards(cards), FormatCards(relabelled))
		}
	}
}

func TestBestFiveMatchesEvaluate(t *testing.T) {
	t.Parallel()
	rng := randutil.New(13)
	for range 300 {
		cards := randomCards(rng, 5+rng.IntN(3))
		want, err := Evaluate(cards)
		require.NoError(t, err)

		five, got, err := BestFive(cards)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Len(t, five, 5)

		again, err := Evaluate(five)
		require.NoError(t, err)
		require.Equal(t, want, again)
		for _, c := range five {
			require.Contains(t, cards, c)
		}
	}
}

func toPaulhankin(t *testing.T, c Card) ph.Card {
	t.Helper()
	suits := [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		rank = 1
	}
	pc, err := ph.MakeCard(suits[c.Suit()], rank)
	require.NoError(t, err)
	return pc
}

// Cross-checks relative ordering against an independent evaluator.
func TestEvaluateAgreesWithReferenceEvaluator(t *testing.T) {
	t.Parallel()
	rng := randutil.New(14)
	sign := func(x int) int {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	}

	for range 3000 {
		cards := randomCards(rng, 9)
		board := cards[:5]
		a := append(slices.Clone(board), cards[5:7]...)
		b := append(slices.Clone(board), cards[7:9]...)

		va, err := Evaluate(a)
		require.NoError(t, err)
		vb, err := Evaluate(b)
		require.NoError(t, err)

		var ra, rb [7]ph.Card
		for i := range 7 {
			ra[i] = toPaulhankin(t, a[i])
			rb[i] = toPaulhankin(t, b[i])
		}
		ref := sign(int(ph.Eval7(&ra)) - int(ph.Eval7(&rb)))
		require.Equal(t, ref, Compare(va, vb), "%s vs %s", FormatCards(a), FormatCards(b))
	}
}

func BenchmarkEvaluateHand(b *testing.B) {
	hand := NewHand(MustParseCards("Kc 2d Kh 9s Ac 3c Qd")...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EvaluateHand(hand)
	}
}

func BenchmarkBestFive(b *testing.B) {
	cards := MustParseCards("Kc 2d Kh 9s Ac 3c Qd")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = BestFive(cards)
	}
}

package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the strength of the best five-card hand. Bits 20-23 hold the
// category and bits 0-19 hold five tie-break face values (2-14) as nibbles,
// most significant first. Larger values are stronger; equal values tie.
type HandValue uint32

var (
	// ErrCardCount is returned when evaluating fewer than 5 or more than 7 cards.
	ErrCardCount = errors.New("evaluate needs 5 to 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

func makeValue(t HandType, faces ...uint8) HandValue {
	v := HandValue(t) << 20
	for i, f := range faces {
		v |= HandValue(f) << (16 - 4*i)
	}
	return v
}

// Type returns the hand category.
func (v HandValue) Type() HandType {
	return HandType(v >> 20)
}

// Ranks returns the five tie-break face values, most significant first.
// Unused trailing slots are zero.
func (v HandValue) Ranks() [5]int {
	var out [5]int
	for i := range out {
		out[i] = int(v>>(16-4*i)) & 0xF
	}
	return out
}

// IsRoyalFlush reports an ace-high straight flush.
func (v HandValue) IsRoyalFlush() bool {
	return v.Type() == StraightFlush && v.Ranks()[0] == 14
}

// String describes the hand, e.g. "Full House, Kings full of Fours".
func (v HandValue) String() string {
	r := v.Ranks()
	switch v.Type() {
	case StraightFlush:
		if v.IsRoyalFlush() {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", faceName(r[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", plural(r[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", plural(r[0]), plural(r[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", faceName(r[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", faceName(r[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", plural(r[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", plural(r[0]), plural(r[1]))
	case Pair:
		return fmt.Sprintf("Pair of %s", plural(r[0]))
	default:
		return fmt.Sprintf("High Card, %s", faceName(r[0]))
	}
}

var faceNames = [...]string{2: "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace"}

func faceName(face int) string {
	if face < 2 || face > 14 {
		return "?"
	}
	return faceNames[face]
}

func plural(face int) string {
	if face == 6 {
		return "Sixes"
	}
	return faceName(face) + "s"
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for a tie.
func Compare(a, b HandValue) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// Evaluate returns the value of the best five-card hand that can be made
// from 5 to 7 distinct cards. The input slice is not modified.
func Evaluate(cards []Card) (HandValue, error) {
	h, err := toHand(cards)
	if err != nil {
		return 0, err
	}
	return EvaluateHand(h), nil
}

// BestFive returns the five cards forming the best hand together with its
// value, searching every 5-card subset.
func BestFive(cards []Card) ([]Card, HandValue, error) {
	if _, err := toHand(cards); err != nil {
		return nil, 0, err
	}

	var (
		best    HandValue
		bestIdx []int
	)
	forEachSubset(len(cards), 5, func(idx []int) {
		var subset Hand
		for _, i := range idx {
			subset |= Hand(cards[i])
		}
		if v := EvaluateHand(subset); bestIdx == nil || v > best {
			best = v
			bestIdx = append(bestIdx[:0], idx...)
		}
	})

	out := make([]Card, 5)
	for i, j := range bestIdx {
		out[i] = cards[j]
	}
	return out, best, nil
}

// forEachSubset calls fn with every k-element index subset of 0..n-1 in
// lexicographic order. The slice is reused between calls.
func forEachSubset(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func toHand(cards []Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}
	var h Hand
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		h.AddCard(c)
	}
	return h, nil
}

// EvaluateHand evaluates a hand of 5 to 7 cards held as a bitset. The result
// for other sizes is unspecified.
func EvaluateHand(hand Hand) HandValue {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := range uint8(4) {
		mask := hand.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}

	// Seven cards cannot hold a flush together with quads or a full house,
	// so a flush suit settles the category.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return makeValue(StraightFlush, high)
		}
		return makeValue(Flush, topFaces(suitMask, 5)...)
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestRank(quadsMask); quad >= 0 {
		kickers := topFaces(rankMask&^(1<<quad), 1)
		return makeValue(FourOfAKind, face(quad), kickers[0])
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		// A second set of trips plays as the pair.
		if pair := highestRank(pairsMask | tripsMask&^(1<<trip)); pair >= 0 {
			return makeValue(FullHouse, face(trip), face(pair))
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return makeValue(Straight, high)
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		kickers := topFaces(rankMask&^(1<<trip), 2)
		return makeValue(ThreeOfAKind, append([]uint8{face(trip)}, kickers...)...)
	}

	if high := highestRank(pairsMask); high >= 0 {
		if low := highestRank(pairsMask &^ (1 << high)); low >= 0 {
			kickers := topFaces(rankMask&^(1<<high|1<<low), 1)
			return makeValue(TwoPair, face(high), face(low), kickers[0])
		}
		kickers := topFaces(rankMask&^(1<<high), 3)
		return makeValue(Pair, append([]uint8{face(high)}, kickers...)...)
	}

	return makeValue(HighCard, topFaces(rankMask, 5)...)
}

func face(rank int) uint8 {
	return uint8(rank) + 2
}

// highestRank returns the highest rank present in the bitmask (or -1 when empty).
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// topFaces returns the n highest face values in the mask, descending.
func topFaces(mask uint16, n int) []uint8 {
	out := make([]uint8, 0, n)
	for len(out) < n && mask != 0 {
		top := highestRank(mask)
		out = append(out, face(top))
		mask &^= 1 << top
	}
	return out
}

// straightHigh returns the face value of the top card of the best straight in
// the rank mask, 5 for the wheel, or 0 when there is none.
func straightHigh(mask uint16) uint8 {
	mask &= 0x1FFF
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return face(highestRank(seq) + 4)
	}

	const wheelMask = 0x100F // Ace + 2-3-4-5
	if mask&wheelMask == wheelMask {
		return 5
	}
	return 0
}

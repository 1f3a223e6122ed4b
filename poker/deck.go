package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered pile of cards drawn from the top without replacement.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // nil for stacked decks
}

// NewDeck creates a full 52-card deck shuffled with the provided RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	d.Shuffle()
	return d
}

// NewOrderedDeck returns a deck that deals exactly the given cards in order.
// Shuffle is a no-op on such a deck.
func NewOrderedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle permutes the remaining cards using Fisher-Yates.
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	rest := d.cards[d.next:]
	for i := len(rest) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
}

// Draw removes and returns the top n cards.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("draw %d cards: negative count", n)
	}
	if n > d.Remaining() {
		return nil, fmt.Errorf("draw %d cards with %d left: %w", n, d.Remaining(), ErrDeckExhausted)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Reset restores the full, unshuffled 52-card set.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.next = 0
}

// Remaining returns the number of cards left to draw.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

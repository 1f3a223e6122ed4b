package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine RNG that draws per-hand shuffle seeds.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = randutil.New(seed)
	}
}

// WithRand sets the engine RNG directly.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithDeckSource replaces how a hand's deck is built from its seed. Useful
// for stacked decks in tests.
func WithDeckSource(fn func(seed int64) *poker.Deck) Option {
	return func(e *Engine) {
		e.newDeck = fn
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEventBus publishes engine events on bus.
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithIDGenerator sets how hand IDs are created.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// withHandSeed forces the seed of the next hand. Used by Replay.
func withHandSeed(seed int64) Option {
	return func(e *Engine) {
		e.nextSeed = &seed
	}
}

func shuffledDeck(seed int64) *poker.Deck {
	return poker.NewDeck(randutil.New(seed))
}

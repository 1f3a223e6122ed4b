package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/poker"
)

// newTestEngine seats p0..pN with the given stacks at 10/20, button on p0.
func newTestEngine(t *testing.T, stacks []int, opts ...Option) *Engine {
	t.Helper()
	return newTestEngineWith(t, Config{SmallBlind: 10, BigBlind: 20}, stacks, opts...)
}

func newTestEngineWith(t *testing.T, cfg Config, stacks []int, opts ...Option) *Engine {
	t.Helper()
	seats := make([]SeatConfig, len(stacks))
	for i, stack := range stacks {
		seats[i] = SeatConfig{ID: fmt.Sprintf("p%d", i), Stack: stack}
	}
	opts = append([]Option{WithSeed(42)}, opts...)
	e, err := NewEngine(cfg, seats, opts...)
	require.NoError(t, err)
	return e
}

// stacked deals exactly the given cards: hole cards one at a time starting
// left of the button, then the board without burns.
func stacked(cards string) Option {
	return WithDeckSource(func(int64) *poker.Deck {
		return poker.NewOrderedDeck(poker.MustParseCards(cards)...)
	})
}

func mustStart(t *testing.T, e *Engine) *HandStart {
	t.Helper()
	hs, err := e.StartHand()
	require.NoError(t, err)
	return hs
}

func mustAct(t *testing.T, e *Engine, seat string, kind ActionKind, amount int) ActionOutcome {
	t.Helper()
	out, err := e.SubmitAction(seat, kind, amount)
	require.NoError(t, err, "%s %s %d", seat, kind, amount)
	return out
}

func mustAdvance(t *testing.T, e *Engine) PhaseOutcome {
	t.Helper()
	out, err := e.AdvancePhase()
	require.NoError(t, err)
	return out
}

// checkDown checks every remaining street through to settlement.
func checkDown(t *testing.T, e *Engine) *Settlement {
	t.Helper()
	for e.State() == StateBetting {
		if actor := e.CurrentActor(); actor != "" {
			mustAct(t, e, actor, Check, 0)
			continue
		}
		mustAdvance(t, e)
	}
	require.Equal(t, StateSettled, e.State())
	return e.Settlement()
}

func stacks(e *Engine) map[string]int {
	out := make(map[string]int)
	for _, s := range e.Seats() {
		out[s.ID] = s.Stack
	}
	return out
}

func illegalReason(t *testing.T, err error) Reason {
	t.Helper()
	require.ErrorIs(t, err, ErrIllegalAction)
	var iae *IllegalActionError
	require.ErrorAs(t, err, &iae)
	return iae.Reason
}

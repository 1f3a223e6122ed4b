package sim

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
)

func TestRunIsZeroSumAndDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Sessions:   6,
		Workers:    3,
		Hands:      25,
		Seed:       2024,
		Strategies: []string{"call", "random", "tight", "aggressive"},
	}

	first, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Sessions)
	assert.Positive(t, first.Hands)

	var total int
	for _, name := range cfg.Strategies {
		s := first.Stats[name]
		require.NotNil(t, s, name)
		require.NoError(t, s.Validate(), name)
		total += s.NetChips
	}
	assert.Zero(t, total, "chips move between strategies, never in or out")

	second, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Hands, second.Hands)
	for _, name := range cfg.Strategies {
		assert.Equal(t, first.Stats[name].NetChips, second.Stats[name].NetChips, name)
		assert.Equal(t, first.Stats[name].Values, second.Stats[name].Values, name)
	}
}

func TestRunPublishesEvents(t *testing.T) {
	t.Parallel()
	bus := game.NewEventBus()
	var settled atomic.Int64
	bus.Subscribe(game.EventSubscriberFunc(func(ev game.Event) {
		if ev.EventType() == game.EventTypeHandSettled {
			settled.Add(1)
		}
	}))

	report, err := Run(context.Background(), Config{
		Sessions:   2,
		Hands:      10,
		Seed:       7,
		Strategies: []string{"call", "fold"},
		Bus:        bus,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(report.Hands), settled.Load())
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Sessions: 2, Hands: 10, Seed: 1, Strategies: []string{"call", "call"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunValidatesConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"sessions", Config{Hands: 1}, "sessions must be positive"},
		{"hands", Config{Sessions: 1}, "hands must be positive"},
		{"one strategy", Config{Sessions: 1, Hands: 1, Strategies: []string{"call"}}, "need 2-10 strategies"},
		{"unknown strategy", Config{Sessions: 1, Hands: 1, Strategies: []string{"call", "shark"}}, "unknown strategy"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Run(context.Background(), tc.cfg)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

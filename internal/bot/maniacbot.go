package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	return run(ctx, view, legal, m.decide)
}

func (m *ManiacBot) decide(view game.Snapshot, legal game.LegalActions) table.Decision {
	me := acting(view)

	if legal.Can(game.Check) {
		if m.rng.Float64() < 0.85 {
			if me.Stack <= 20*view.BigBlind || m.rng.Float64() < 0.3 {
				return prefer(legal, "maniac shove", game.AllIn)
			}
			if d, ok := raiseTo(legal, 0.75, "maniac big bet"); ok {
				return d
			}
		}
		return prefer(legal, "maniac checking", game.Check)
	}

	// Facing a bet: 40% shove, 40% call, 20% fold.
	r := m.rng.Float64()
	switch {
	case r < 0.4:
		return prefer(legal, "maniac shove over bet", game.AllIn, game.Call)
	case r < 0.8:
		return prefer(legal, "maniac call", game.Call, game.AllIn)
	}
	return prefer(legal, "maniac fold", game.Fold)
}

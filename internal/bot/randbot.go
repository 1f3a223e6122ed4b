package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	return run(ctx, view, legal, r.decide)
}

func (r *RandBot) decide(_ game.Snapshot, legal game.LegalActions) table.Decision {
	if len(legal.Actions) == 0 {
		return table.Decision{Kind: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	kind := legal.Actions[r.rng.IntN(len(legal.Actions))]
	d := table.Decision{Kind: kind, Reasoning: "rand-bot random action"}
	if kind == game.Bet || kind == game.Raise {
		d.Amount = legal.MinRaiseTo + r.rng.IntN(legal.MaxRaiseTo-legal.MinRaiseTo+1)
	}
	return d
}

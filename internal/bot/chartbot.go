package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
)

// ChartBot implements a simple push-fold pre-flop chart and check/call post-flop
type ChartBot struct {
	logger *log.Logger
}

// NewChartBot creates a new ChartBot instance
func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: logger}
}

func (c *ChartBot) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	return run(ctx, view, legal, c.decide)
}

func (c *ChartBot) decide(view game.Snapshot, legal game.LegalActions) table.Decision {
	if view.Phase == game.Preflop {
		me := acting(view)
		// Push playable hands with a short stack.
		if holeCategory(view).Playable() && me.Stack <= 20*view.BigBlind {
			return prefer(legal, "chart-bot push", game.AllIn)
		}
		// Otherwise limp along but never call a raise.
		if view.CurrentBet > view.BigBlind {
			return prefer(legal, "chart-bot folding to raise", game.Check, game.Fold)
		}
	}
	return prefer(legal, "chart-bot", game.Check, game.Call)
}

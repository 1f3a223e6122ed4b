package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
)

// CallBot checks and calls down, except that it folds big river bets and
// shoves a short stack into an unraised pot.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	return run(ctx, view, legal, c.decide)
}

func (c *CallBot) decide(view game.Snapshot, legal game.LegalActions) table.Decision {
	// A bet of 80% pot or more gives worse than 0.3 pot odds.
	if view.Phase == game.River && legal.PotOdds > 0.3 {
		return prefer(legal, "folding river to large bet", game.Check, game.Fold)
	}

	me := acting(view)
	if view.BigBlind > 0 && me.Stack < 10*view.BigBlind && view.CurrentBet <= view.BigBlind && legal.Can(game.AllIn) {
		c.logger.Debug("short stack shove", "stack", me.Stack)
		return table.Decision{Kind: game.AllIn, Reasoning: "shoving with short stack"}
	}

	return prefer(legal, "call-bot", game.Check, game.Call)
}

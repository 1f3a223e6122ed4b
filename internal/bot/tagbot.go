package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
	"github.com/lox/holdem/poker"
)

// TAGBot is a tight aggressive bot: it enters pots with good hole cards only,
// raises its best hands and bets made hands after the flop.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	return run(ctx, view, legal, t.decide)
}

func (t *TAGBot) decide(view game.Snapshot, legal game.LegalActions) table.Decision {
	adj := Evaluate(Recognize(view, legal))
	if len(adj.Rules) > 0 {
		t.logger.Debug("situation", "rules", adj.Rules, "fold", adj.Fold, "call", adj.Call, "raise", adj.Raise)
	}
	if view.Phase == game.Preflop {
		return t.preflop(view, legal, adj)
	}

	made := madeHand(view)
	switch {
	case made >= poker.TwoPair:
		if adj.Raise >= 1 {
			if d, ok := potSized(view, legal, 0.75, "TAG value bet"); ok {
				return d
			}
		}
		return prefer(legal, "TAG call with strong hand", game.Check, game.Call, game.AllIn)
	case made == poker.Pair:
		if legal.PotOdds <= adj.CallThreshold(0.3) {
			return prefer(legal, "TAG check/call pair", game.Check, game.Call)
		}
	}

	// Occasional float so the bot is not a pure fold to any bet.
	if legal.PotOdds <= adj.CallThreshold(0.2) && t.rng.Float64() < 0.3 {
		return prefer(legal, "TAG float", game.Check, game.Call)
	}
	return prefer(legal, "TAG check/fold", game.Check, game.Fold)
}

func (t *TAGBot) preflop(view game.Snapshot, legal game.LegalActions, adj Adjustment) table.Decision {
	category := holeCategory(view)
	t.logger.Debug("preflop", "category", category, "to_call", legal.ToCall)

	switch category {
	case poker.CategoryPremium:
		if d, ok := raiseTo(legal, 0.25, "TAG raise premium"); ok {
			return d
		}
		return prefer(legal, "TAG call premium", game.Call, game.AllIn, game.Check)
	case poker.CategoryStrong:
		if view.CurrentBet <= view.BigBlind && adj.Raise >= 1 {
			return prefer(legal, "TAG open strong", game.Raise, game.Check, game.Call)
		}
		return prefer(legal, "TAG call strong", game.Check, game.Call)
	case poker.CategoryMedium:
		if legal.PotOdds <= adj.CallThreshold(0.25) {
			return prefer(legal, "TAG call medium", game.Check, game.Call)
		}
	}
	return prefer(legal, "TAG fold", game.Check, game.Fold)
}

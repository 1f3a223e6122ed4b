// Package bot holds simple reference strategies that plug into a table as
// agents. None of them try to play well; they exist to exercise the engine
// with varied betting patterns.
package bot

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
	"github.com/lox/holdem/poker"
)

// Strategies lists the names accepted by New.
var Strategies = []string{"fold", "call", "random", "aggressive", "tight", "chart"}

// New creates the named strategy. rng is used by the strategies that
// randomise and must not be shared between goroutines.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (table.Agent, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix(strategy + "-bot")
	switch strategy {
	case "fold":
		return NewFoldBot(logger), nil
	case "call":
		return NewCallBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "aggressive":
		return NewManiacBot(rng, logger), nil
	case "tight":
		return NewTAGBot(rng, logger), nil
	case "chart":
		return NewChartBot(logger), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %v)", strategy, Strategies)
}

// decideFunc is the shape every strategy implements. Strategies do not
// block, so ctx is only checked on entry.
type decideFunc func(view game.Snapshot, legal game.LegalActions) table.Decision

func run(ctx context.Context, view game.Snapshot, legal game.LegalActions, fn decideFunc) (table.Decision, error) {
	if err := ctx.Err(); err != nil {
		return table.Decision{}, err
	}
	return fn(view, legal), nil
}

// prefer returns the first of kinds that is legal, with the smallest legal
// amount for bets and raises. It checks or folds when none is.
func prefer(legal game.LegalActions, reasoning string, kinds ...game.ActionKind) table.Decision {
	for _, k := range kinds {
		if legal.Can(k) {
			d := table.Decision{Kind: k, Reasoning: reasoning}
			if k == game.Bet || k == game.Raise {
				d.Amount = legal.MinRaiseTo
			}
			return d
		}
	}
	if legal.Can(game.Check) {
		return table.Decision{Kind: game.Check, Reasoning: "fallback: " + reasoning}
	}
	return table.Decision{Kind: game.Fold, Reasoning: "fallback: " + reasoning}
}

// raiseTo bets or raises to a fraction of the way between the minimum and
// the all-in amount.
func raiseTo(legal game.LegalActions, fraction float64, reasoning string) (table.Decision, bool) {
	kind := game.Raise
	if legal.Can(game.Bet) {
		kind = game.Bet
	}
	if !legal.Can(kind) {
		return table.Decision{}, false
	}
	amount := legal.MinRaiseTo + int(float64(legal.MaxRaiseTo-legal.MinRaiseTo)*fraction)
	return table.Decision{Kind: kind, Amount: amount, Reasoning: reasoning}, true
}

// potSized bets or raises by roughly fraction of the pot, clamped to the
// legal range.
func potSized(view game.Snapshot, legal game.LegalActions, fraction float64, reasoning string) (table.Decision, bool) {
	kind := game.Raise
	if legal.Can(game.Bet) {
		kind = game.Bet
	}
	if !legal.Can(kind) {
		return table.Decision{}, false
	}
	amount := view.CurrentBet + int(float64(view.PotTotal+legal.ToCall)*fraction)
	amount = max(legal.MinRaiseTo, min(amount, legal.MaxRaiseTo))
	return table.Decision{Kind: kind, Amount: amount, Reasoning: reasoning}, true
}

// acting returns the acting seat's view.
func acting(view game.Snapshot) game.SeatView {
	seat, _ := view.Seat(view.Actor)
	return seat
}

// madeHand returns the category of the seat's best hand so far. Preflop it
// reports HighCard.
func madeHand(view game.Snapshot) poker.HandType {
	seat := acting(view)
	if len(view.Board) < 3 || len(seat.HoleCards) != 2 {
		return poker.HighCard
	}
	value, err := poker.Evaluate(append(slices.Clone(seat.HoleCards), view.Board...))
	if err != nil {
		return poker.HighCard
	}
	return value.Type()
}

// holeCategory buckets the acting seat's hole cards.
func holeCategory(view game.Snapshot) poker.HoleCardCategory {
	seat := acting(view)
	if len(seat.HoleCards) != 2 {
		return poker.CategoryUnknown
	}
	return poker.CategorizeHoleCards(seat.HoleCards[0], seat.HoleCards[1])
}

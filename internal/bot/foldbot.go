package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/table"
)

// FoldBot folds whenever it cannot check.
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	return run(ctx, view, legal, func(_ game.Snapshot, legal game.LegalActions) table.Decision {
		return prefer(legal, "fold-bot", game.Check, game.Fold)
	})
}

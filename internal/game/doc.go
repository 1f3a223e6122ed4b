// Package game runs No-Limit Texas Hold'em hands.
//
// The main type is Engine, which owns the seats, the pot, the board and the
// current BettingRound of a single table. It is a synchronous state machine:
//
//	Idle -> Dealing -> Betting(phase) -> Showdown -> Settled -> Idle
//
// Callers start a hand, submit the current actor's decisions and advance
// the phase whenever the betting round reports completion:
//
//	e, _ := game.NewEngine(game.Config{SmallBlind: 10, BigBlind: 20}, seats,
//	    game.WithSeed(42))
//	e.StartHand()
//	for e.State() == game.StateBetting {
//	    if actor := e.CurrentActor(); actor != "" {
//	        e.SubmitAction(actor, game.Call, 0)
//	        continue
//	    }
//	    e.AdvancePhase()
//	}
//
// Rejected actions return *IllegalActionError and leave the engine
// untouched. Pot layers (main and side pots) are derived from each seat's
// hand contribution, see BuildPots. Every hand produces a HandRecord that
// Replay can re-run from its shuffle seed.
//
// The engine never blocks and is not safe for concurrent use; the table
// package wraps it with a mutex, decision callbacks and a turn timer.
package game

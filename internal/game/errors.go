package game

import (
	"errors"
	"fmt"

	"github.com/lox/holdem/poker"
)

var (
	// ErrIllegalAction matches every *IllegalActionError.
	ErrIllegalAction = errors.New("illegal action")
	// ErrNotComplete is returned by AdvancePhase while the betting round is open.
	ErrNotComplete = errors.New("betting round not complete")
	// ErrHandInProgress is returned by StartHand while a hand is running.
	ErrHandInProgress = errors.New("hand in progress")
	// ErrNoHand is returned when an operation needs a running hand.
	ErrNoHand = errors.New("no hand in progress")
	// ErrNotEnoughPlayers is returned when fewer than two seats have chips.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	// ErrUnknownSeat is returned for seat IDs that are not at the table.
	ErrUnknownSeat = errors.New("unknown seat")
	// ErrInvalidConfig is returned by NewEngine for a bad table setup.
	ErrInvalidConfig = errors.New("invalid table config")
	// ErrReplayMismatch is returned when a replayed hand diverges from its record.
	ErrReplayMismatch = errors.New("replay does not match record")

	// ErrDeckExhausted aliases the deck error so callers only import game.
	ErrDeckExhausted = poker.ErrDeckExhausted
)

// Reason explains why an action was rejected.
type Reason string

const (
	ReasonNotYourTurn       Reason = "not your turn"
	ReasonCannotCheck       Reason = "cannot check facing a bet"
	ReasonNothingToCall     Reason = "nothing to call"
	ReasonBetFacingBet      Reason = "cannot bet facing a bet, raise instead"
	ReasonNoBetToRaise      Reason = "no bet to raise, bet instead"
	ReasonUnderRaise        Reason = "raise below minimum"
	ReasonInsufficientChips Reason = "insufficient chips"
	ReasonRaiseClosed       Reason = "raising is closed"
	ReasonUnknownAction     Reason = "unknown action"
)

// IllegalActionError reports a rejected action. State is never modified when
// it is returned.
type IllegalActionError struct {
	Seat   string
	Kind   ActionKind
	Amount int
	Reason Reason
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal %s by %s: %s", e.Kind, e.Seat, e.Reason)
}

func (e *IllegalActionError) Is(target error) bool {
	return target == ErrIllegalAction
}

func illegal(seat *Seat, kind ActionKind, amount int, reason Reason) *IllegalActionError {
	return &IllegalActionError{Seat: seat.ID, Kind: kind, Amount: amount, Reason: reason}
}

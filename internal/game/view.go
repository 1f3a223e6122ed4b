package game

import (
	"slices"

	"github.com/lox/holdem/poker"
)

// LegalActions is what the seat to act may do. Bet and raise amounts are
// round totals between MinRaiseTo and MaxRaiseTo. Actions is empty for a
// seat that is not the current actor.
type LegalActions struct {
	Seat       string
	Actions    []ActionKind
	ToCall     int
	MinRaiseTo int
	MaxRaiseTo int
	// PotOdds is ToCall / (pot + ToCall), zero when there is nothing to call.
	PotOdds float64
}

// Can reports whether kind is among the legal actions.
func (la LegalActions) Can(kind ActionKind) bool {
	return slices.Contains(la.Actions, kind)
}

// SeatView is the public view of a seat. HoleCards is nil when hidden from
// the viewer; HasCards still reports whether the seat holds cards.
type SeatView struct {
	ID                string
	Name              string
	Stack             int
	HoleCards         []poker.Card
	HasCards          bool
	Folded            bool
	AllIn             bool
	InHand            bool
	RoundContribution int
	HandContribution  int
	Dealer            bool
	SmallBlind        bool
	BigBlind          bool
}

// Snapshot is a point-in-time view of the table for one viewer.
type Snapshot struct {
	HandID     string
	State      State
	Phase      Phase
	SmallBlind int
	BigBlind   int
	Board      []poker.Card
	Pots       []Pot
	PotTotal   int
	CurrentBet int
	MinRaise   int
	Actor      string
	Seats      []SeatView
}

// Seat returns the view of one seat.
func (s Snapshot) Seat(id string) (SeatView, bool) {
	for _, v := range s.Seats {
		if v.ID == id {
			return v, true
		}
	}
	return SeatView{}, false
}

// Snapshot returns the table as seen by viewer. Other seats' hole cards are
// only shown once the hand reached showdown, and never for folded seats.
func (e *Engine) Snapshot(viewer string) Snapshot {
	snap := Snapshot{
		HandID:     e.handID,
		State:      e.state,
		Phase:      e.phase,
		SmallBlind: e.cfg.SmallBlind,
		BigBlind:   e.cfg.BigBlind,
		Board:      slices.Clone(e.board),
		Pots:       e.Pots(),
		PotTotal:   e.PotTotal(),
		Actor:      e.CurrentActor(),
	}
	if e.round != nil {
		snap.CurrentBet = e.round.CurrentBet
		snap.MinRaise = e.round.MinRaise
	}

	revealed := e.settlement != nil && e.settlement.Showdown
	for _, s := range e.seats {
		v := SeatView{
			ID:                s.ID,
			Name:              s.Name,
			Stack:             s.Stack,
			HasCards:          len(s.HoleCards) > 0,
			Folded:            s.Folded,
			AllIn:             s.AllIn,
			InHand:            s.InHand,
			RoundContribution: s.RoundContribution,
			HandContribution:  s.HandContribution,
			Dealer:            s.Dealer,
			SmallBlind:        s.SmallBlind,
			BigBlind:          s.BigBlind,
		}
		if s.ID == viewer || (revealed && !s.Folded) {
			v.HoleCards = slices.Clone(s.HoleCards)
		}
		snap.Seats = append(snap.Seats, v)
	}
	return snap
}

// LegalActions returns the legal action set for a seat.
func (e *Engine) LegalActions(seatID string) (LegalActions, error) {
	i, err := e.seatIndex(seatID)
	if err != nil {
		return LegalActions{}, err
	}
	if e.state != StateBetting || i != e.actor {
		return LegalActions{Seat: seatID}, nil
	}
	return e.round.Legal(e.seats, i, e.PotTotal()), nil
}

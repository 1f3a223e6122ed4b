package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/poker"
)

// Phase is the betting street of a hand.
type Phase uint8

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
)

var phaseNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	i := slices.Index(phaseNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown phase %q", text)
	}
	*p = Phase(i)
	return nil
}

// boardSize is the number of community cards visible during a phase.
func (p Phase) boardSize() int {
	switch p {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// ActionKind is a seat decision.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise", "allin"}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", a)
}

func (a ActionKind) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ActionKind) UnmarshalText(text []byte) error {
	k, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*a = k
	return nil
}

// ParseActionKind parses the lower-case action name ("all-in" is also
// accepted).
func ParseActionKind(s string) (ActionKind, error) {
	if s == "all-in" {
		return AllIn, nil
	}
	i := slices.Index(actionNames[:], s)
	if i < 0 {
		return 0, fmt.Errorf("unknown action %q", s)
	}
	return ActionKind(i), nil
}

// State is the outer state of the engine.
type State uint8

const (
	StateIdle State = iota
	StateDealing
	StateBetting
	StateShowdown
	StateSettled
)

func (s State) String() string {
	return [...]string{"idle", "dealing", "betting", "showdown", "settled"}[s]
}

// Config holds the table stakes. Button is the seat index the first hand's
// button is placed at (or the next funded seat after it).
//
// By default the big blind's post counts as its preflop action, so an
// unraised pot closes once everyone has called. BigBlindOption instead gives
// the big blind a final chance to check or raise.
type Config struct {
	SmallBlind     int
	BigBlind       int
	Button         int
	BigBlindOption bool
}

// SeatConfig describes a seat when the engine is created.
type SeatConfig struct {
	ID    string
	Name  string
	Stack int
}

// Seat is a player position at the table. Contributions are per betting
// round and per hand; chips in HandContribution are in the pot.
type Seat struct {
	ID        string
	Name      string
	Stack     int
	HoleCards []poker.Card

	Folded bool
	AllIn  bool
	// InHand is false for seats that started the hand without chips.
	InHand bool

	RoundContribution int
	HandContribution  int

	Dealer     bool
	SmallBlind bool
	BigBlind   bool
}

// live reports whether the seat is still contesting the pot.
func (s *Seat) live() bool {
	return s.InHand && !s.Folded
}

// canAct reports whether the seat may still make decisions this hand.
func (s *Seat) canAct() bool {
	return s.InHand && !s.Folded && !s.AllIn
}

// pay moves chips from the stack into the current round.
func (s *Seat) pay(amount int) {
	s.Stack -= amount
	s.RoundContribution += amount
	s.HandContribution += amount
	if s.Stack == 0 {
		s.AllIn = true
	}
}

func (s *Seat) resetForHand() {
	s.HoleCards = nil
	s.Folded = false
	s.AllIn = false
	s.InHand = s.Stack > 0
	s.RoundContribution = 0
	s.HandContribution = 0
	s.Dealer = false
	s.SmallBlind = false
	s.BigBlind = false
}

// ActionRecord is one applied action. Amount is the chips moved by the
// action and To the seat's round contribution afterwards.
type ActionRecord struct {
	Seat   string     `json:"seat"`
	Phase  Phase      `json:"phase"`
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount"`
	To     int        `json:"to"`
	AllIn  bool       `json:"all_in,omitempty"`
	Forced bool       `json:"forced,omitempty"`
}

func (a ActionRecord) String() string {
	s := fmt.Sprintf("%s %s", a.Seat, a.Kind)
	switch a.Kind {
	case Call:
		s += fmt.Sprintf(" %d", a.Amount)
	case Bet, Raise, AllIn:
		s += fmt.Sprintf(" to %d", a.To)
	}
	if a.Forced {
		s += " (blind)"
	}
	return s
}

package bot

import (
	"slices"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

// Sequence describes the betting that led to a decision.
type Sequence int

const (
	Unopened Sequence = iota
	SingleRaise
	ThreeBet
	FourBet
	PostflopBet
	PostflopRaise
)

// Texture is how coordinated the board is.
type Texture int

const (
	DryBoard Texture = iota
	SemiWetBoard
	WetBoard
	VeryWetBoard
)

// Strength buckets the acting seat's holding.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
	VeryStrong
)

// Situation is what a bot knows about a decision beyond its legal actions.
type Situation struct {
	Phase      game.Phase
	Strength   Strength
	PotOdds    float64
	ToCall     int
	Blind      bool
	InPosition bool
	Multiway   bool
	Sequence   Sequence
	Texture    Texture
}

// Recognize reads a situation from the acting seat's snapshot.
func Recognize(view game.Snapshot, legal game.LegalActions) Situation {
	me := acting(view)
	live := 0
	for _, s := range view.Seats {
		if s.HasCards && !s.Folded {
			live++
		}
	}
	return Situation{
		Phase:      view.Phase,
		Strength:   strength(view),
		PotOdds:    legal.PotOdds,
		ToCall:     legal.ToCall,
		Blind:      me.SmallBlind || me.BigBlind,
		InPosition: inPosition(view),
		Multiway:   live > 2,
		Sequence:   sequence(view),
		Texture:    texture(view.Board),
	}
}

func strength(view game.Snapshot) Strength {
	if view.Phase == game.Preflop {
		switch holeCategory(view) {
		case poker.CategoryPremium:
			return VeryStrong
		case poker.CategoryStrong:
			return Strong
		case poker.CategoryMedium:
			return Medium
		}
		return Weak
	}
	switch made := madeHand(view); {
	case made >= poker.Straight:
		return VeryStrong
	case made >= poker.TwoPair:
		return Strong
	case made == poker.Pair:
		return Medium
	}
	return Weak
}

// sequence infers the betting so far from the bet size. Preflop it counts
// big blinds; after the flop a current bet above the last raise increment
// means someone raised.
func sequence(view game.Snapshot) Sequence {
	if view.Phase == game.Preflop {
		bb := max(view.BigBlind, 1)
		switch {
		case view.CurrentBet <= bb:
			return Unopened
		case view.CurrentBet <= 4*bb:
			return SingleRaise
		case view.CurrentBet <= 12*bb:
			return ThreeBet
		}
		return FourBet
	}
	switch {
	case view.CurrentBet == 0:
		return Unopened
	case view.CurrentBet > view.MinRaise:
		return PostflopRaise
	}
	return PostflopBet
}

// inPosition reports whether the actor is the last seat able to act after
// the flop, counting clockwise from the button.
func inPosition(view game.Snapshot) bool {
	n := len(view.Seats)
	dealer := slices.IndexFunc(view.Seats, func(s game.SeatView) bool { return s.Dealer })
	last := ""
	for step := 1; step <= n; step++ {
		s := view.Seats[(dealer+step+n)%n]
		if s.HasCards && !s.Folded && !s.AllIn {
			last = s.ID
		}
	}
	return last == view.Actor
}

func texture(board []poker.Card) Texture {
	if len(board) < 3 {
		return DryBoard
	}

	var suits [4]int
	ranks := make([]int, len(board))
	for i, c := range board {
		suits[c.Suit()]++
		ranks[i] = int(c.Rank())
	}
	wetness := 0
	if slices.Max(suits[:]) >= 3 {
		wetness += 2
	}
	slices.Sort(ranks)
	connected := 1
	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] <= 2 {
			connected++
		}
	}
	if connected >= 3 {
		wetness += 2
	}

	switch {
	case wetness >= 4:
		return VeryWetBoard
	case wetness >= 2:
		return WetBoard
	case wetness >= 1:
		return SemiWetBoard
	}
	return DryBoard
}

// Adjustment scales how willing a bot is to fold, call and raise.
type Adjustment struct {
	Fold, Call, Raise float64
	Rules             []string
}

// CallThreshold scales a pot-odds threshold by the adjustment.
func (a Adjustment) CallThreshold(base float64) float64 {
	return base * a.Call / a.Fold
}

type situationRule struct {
	name    string
	applies func(Situation) bool
	fold    float64
	call    float64
	raise   float64
}

var situationRules = []situationRule{
	{
		name: "weak blind facing a raise",
		applies: func(s Situation) bool {
			return s.Phase == game.Preflop && s.Blind && s.Sequence == SingleRaise && s.Strength <= Medium
		},
		fold: 1.3, call: 0.9, raise: 0.3,
	},
	{
		name: "out of position facing a bet",
		applies: func(s Situation) bool {
			return s.Phase > game.Preflop && !s.InPosition && s.Strength <= Medium && s.Sequence == PostflopBet
		},
		fold: 1.2, call: 1.0, raise: 0.4,
	},
	{
		name: "speculative hand without odds",
		applies: func(s Situation) bool {
			return s.Strength == Weak && s.ToCall > 0 && s.PotOdds > 0.25
		},
		fold: 1.4, call: 0.7, raise: 0.3,
	},
	{
		name: "weak hand multiway",
		applies: func(s Situation) bool {
			return s.Multiway && s.Strength <= Medium && s.ToCall == 0
		},
		fold: 1.0, call: 1.0, raise: 0.4,
	},
	{
		name: "strong hand in position",
		applies: func(s Situation) bool {
			return s.Phase > game.Preflop && s.InPosition && s.Strength >= Strong
		},
		fold: 0.5, call: 0.8, raise: 1.5,
	},
	{
		name: "wet board without the nuts",
		applies: func(s Situation) bool {
			return s.Phase > game.Preflop && s.Texture >= WetBoard && s.Strength <= Strong
		},
		fold: 1.2, call: 0.9, raise: 0.7,
	},
}

// Evaluate compounds every rule that applies to s.
func Evaluate(s Situation) Adjustment {
	adj := Adjustment{Fold: 1, Call: 1, Raise: 1}
	for _, r := range situationRules {
		if r.applies(s) {
			adj.Fold *= r.fold
			adj.Call *= r.call
			adj.Raise *= r.raise
			adj.Rules = append(adj.Rules, r.name)
		}
	}
	return adj
}

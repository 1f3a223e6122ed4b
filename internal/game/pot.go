package game

import (
	"slices"

	"github.com/lox/holdem/poker"
)

// Pot is one layer of the pot. Layer 0 is the main pot; later layers are
// side pots contested by the seats that contributed at least Level.
type Pot struct {
	Amount   int      `json:"amount"`
	Level    int      `json:"level"`
	Eligible []string `json:"eligible"`
}

// BuildPots splits hand contributions into layers. Levels are the distinct
// contributions of seats still in the pot. Folded chips are dead money in
// the layers they reach, and anything above the top level joins the top
// layer. The layer amounts always sum to the total contributed.
func BuildPots(seats []*Seat) []Pot {
	var levels []int
	for _, s := range seats {
		if s.live() && s.HandContribution > 0 {
			levels = append(levels, s.HandContribution)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	var total int
	for _, s := range seats {
		total += s.HandContribution
	}
	if total == 0 {
		return nil
	}
	if len(levels) == 0 {
		// Only dead money so far.
		var eligible []string
		for _, s := range seats {
			if s.live() {
				eligible = append(eligible, s.ID)
			}
		}
		return []Pot{{Amount: total, Eligible: eligible}}
	}

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{Level: level}
		for _, s := range seats {
			pot.Amount += min(s.HandContribution, level) - min(s.HandContribution, prev)
			if s.live() && s.HandContribution >= level {
				pot.Eligible = append(pot.Eligible, s.ID)
			}
		}
		pots = append(pots, pot)
		prev = level
	}
	for _, s := range seats {
		if s.HandContribution > prev {
			pots[len(pots)-1].Amount += s.HandContribution - prev
		}
	}
	return pots
}

// PotAward is the outcome of one pot layer. Shares is parallel to Winners.
type PotAward struct {
	Layer   int             `json:"layer"`
	Amount  int             `json:"amount"`
	Winners []string        `json:"winners"`
	Shares  []int           `json:"shares"`
	Value   poker.HandValue `json:"value,omitempty"`
	// Returned marks an uncalled bet given back to its only contributor.
	Returned bool `json:"returned,omitempty"`
}

// ShownHand is a hand revealed at showdown.
type ShownHand struct {
	Seat  string          `json:"seat"`
	Cards []poker.Card    `json:"cards"`
	Best  []poker.Card    `json:"best"`
	Value poker.HandValue `json:"value"`
}

// Settlement is the settlement report of a finished hand.
type Settlement struct {
	Awards   []PotAward     `json:"awards"`
	Payouts  map[string]int `json:"payouts"`
	Showdown bool           `json:"showdown"`
	Hands    []ShownHand    `json:"hands,omitempty"`
}

// Total returns the chips awarded.
func (s *Settlement) Total() int {
	var total int
	for _, a := range s.Awards {
		total += a.Amount
	}
	return total
}

// Winners returns every seat that received chips, in award order.
func (s *Settlement) Winners() []string {
	var out []string
	for _, a := range s.Awards {
		for _, w := range a.Winners {
			if !slices.Contains(out, w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// settle awards every pot layer. order lists seat indexes starting after the
// dealer and decides who receives odd chips. When showdown is false every
// layer must have a single eligible seat.
func settle(seats []*Seat, order []int, board []poker.Card, showdown bool) (*Settlement, error) {
	st := &Settlement{Payouts: make(map[string]int), Showdown: showdown}

	values := make(map[int]poker.HandValue)
	if showdown {
		for _, i := range order {
			s := seats[i]
			if !s.live() {
				continue
			}
			cards := append(slices.Clone(s.HoleCards), board...)
			best, value, err := poker.BestFive(cards)
			if err != nil {
				return nil, err
			}
			values[i] = value
			st.Hands = append(st.Hands, ShownHand{Seat: s.ID, Cards: slices.Clone(s.HoleCards), Best: best, Value: value})
		}
	}

	prevLevel := 0
	for layer, pot := range BuildPots(seats) {
		award := PotAward{Layer: layer, Amount: pot.Amount}
		eligible := make([]int, 0, len(pot.Eligible))
		for _, i := range order {
			if slices.Contains(pot.Eligible, seats[i].ID) {
				eligible = append(eligible, i)
			}
		}

		var winners []int
		if len(eligible) == 1 || !showdown {
			winners = eligible[:min(1, len(eligible))]
			award.Returned = len(eligible) == 1 && onlyContributor(seats, eligible[0], prevLevel)
		} else {
			var best poker.HandValue
			for _, i := range eligible {
				switch v := values[i]; {
				case len(winners) == 0 || v > best:
					best, winners = v, []int{i}
				case v == best:
					winners = append(winners, i)
				}
			}
			award.Value = best
		}

		if len(winners) > 0 {
			share, rem := pot.Amount/len(winners), pot.Amount%len(winners)
			for k, i := range winners {
				amount := share
				if k == 0 {
					amount += rem
				}
				award.Winners = append(award.Winners, seats[i].ID)
				award.Shares = append(award.Shares, amount)
				st.Payouts[seats[i].ID] += amount
			}
		}
		st.Awards = append(st.Awards, award)
		prevLevel = pot.Level
	}
	return st, nil
}

// onlyContributor reports whether seat i is the only one with chips above
// the layer's lower bound.
func onlyContributor(seats []*Seat, i, lower int) bool {
	for j, s := range seats {
		if j != i && s.HandContribution > lower {
			return false
		}
	}
	return true
}

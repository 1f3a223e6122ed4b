// Package statistics accumulates per-seat hand results for simulations.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdem/internal/game"
)

// BigPotBB is the pot size, in big blinds, from which a pot counts as big.
const BigPotBB = 50

// HandResult is one seat's outcome of one hand.
type HandResult struct {
	Net      int   // chips won minus chips put in
	BigBlind int   // stake the hand was played at
	Seed     int64 // shuffle seed, for replay
	// Position counts seats clockwise from the button, which is 0.
	Position int
	Showdown bool
	Pot      int // chips awarded
	Reached  game.Phase
}

// NetBB returns the result in big blinds.
func (r HandResult) NetBB() float64 {
	if r.BigBlind == 0 {
		return 0
	}
	return float64(r.Net) / float64(r.BigBlind)
}

// PositionStats tracks results for one table position.
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Mean returns the mean result in big blinds.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// Statistics aggregates hand results. The zero value is ready to use.
type Statistics struct {
	Hands    int
	NetChips int
	SumBB    float64
	SumBB2   float64
	Values   []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Positions [game.MaxSeats]PositionStats
	Reached   [game.Showdown + 1]int

	MaxPotChips int
	BigPots     int
	BigPotsBB   float64
}

// Add records one result.
func (s *Statistics) Add(r HandResult) {
	bb := r.NetBB()
	s.Hands++
	s.NetChips += r.Net
	s.SumBB += bb
	s.SumBB2 += bb * bb
	s.Values = append(s.Values, bb)

	if r.Showdown {
		s.ShowdownBB += bb
		if r.Net > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += bb
		if r.Net > 0 {
			s.NonShowdownWins++
		}
	}

	if r.Position >= 0 && r.Position < len(s.Positions) {
		p := &s.Positions[r.Position]
		p.Hands++
		p.SumBB += bb
		p.SumBB2 += bb * bb
	}
	if int(r.Reached) < len(s.Reached) {
		s.Reached[r.Reached]++
	}

	s.MaxPotChips = max(s.MaxPotChips, r.Pot)
	if r.BigBlind > 0 && r.Pot >= BigPotBB*r.BigBlind {
		s.BigPots++
		s.BigPotsBB += bb
	}
}

// Merge adds every result of other.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.NetChips += other.NetChips
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	for i := range s.Positions {
		s.Positions[i].Hands += other.Positions[i].Hands
		s.Positions[i].SumBB += other.Positions[i].SumBB
		s.Positions[i].SumBB2 += other.Positions[i].SumBB2
	}
	for i := range s.Reached {
		s.Reached[i] += other.Reached[i]
	}
	s.MaxPotChips = max(s.MaxPotChips, other.MaxPotChips)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Mean returns big blinds won per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BB100 returns big blinds won per hundred hands.
func (s *Statistics) BB100() float64 {
	return s.Mean() * 100
}

func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated value at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the accumulated counters agree with each other.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: SumBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	var positioned int
	for _, p := range s.Positions {
		positioned += p.Hands
	}
	if positioned != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positioned, s.Hands)
	}
	return nil
}

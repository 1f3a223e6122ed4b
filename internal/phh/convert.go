package phh

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/gameid"
	"github.com/lox/holdem/poker"
)

// FromRecord builds the PHH history of a finished hand.
func FromRecord(rec *game.HandRecord, tableName string) (*HandHistory, error) {
	if rec == nil {
		return nil, errors.New("phh: hand record is nil")
	}
	if rec.Settlement == nil {
		return nil, fmt.Errorf("phh: hand %s is not settled", rec.HandID)
	}
	if len(rec.Actions) < 2 || !rec.Actions[0].Forced || !rec.Actions[1].Forced {
		return nil, fmt.Errorf("phh: hand %s has no blinds", rec.HandID)
	}

	order := playerOrder(rec)
	index := make(map[string]int, len(order))
	for i, seat := range order {
		index[rec.Seats[seat].ID] = i
	}
	n := len(order)

	h := &HandHistory{
		Variant:           Variant,
		Table:             tableName,
		SeatCount:         len(rec.Seats),
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            rec.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Players:           make([]string, n),
		HandID:            rec.HandID,
		Seed:              rec.Seed,
	}
	if t, err := gameid.Time(rec.HandID); err == nil {
		h.setTime(t)
	}

	net := rec.Net()
	for i, seat := range order {
		s := rec.Seats[seat]
		h.Seats[i] = seat + 1
		h.Players[i] = s.Name
		h.StartingStacks[i] = s.Stack
		h.FinishingStacks[i] = s.Stack + net[s.ID]
		h.Winnings[i] = rec.Settlement.Payouts[s.ID]
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, cards(rec.HoleCards[s.ID])))
	}

	dealt := 0
	deal := func(upTo game.Phase) {
		for _, size := range []int{3, 4, 5} {
			if size > len(rec.Board) || phaseOfBoard(size) > upTo || size <= dealt {
				continue
			}
			h.Actions = append(h.Actions, "d db "+cards(rec.Board[dealt:size]))
			dealt = size
		}
	}

	var (
		street = game.Preflop
		bet    int
	)
	for _, a := range rec.Actions {
		p, ok := index[a.Seat]
		if !ok {
			return nil, fmt.Errorf("phh: action by unknown seat %q", a.Seat)
		}
		if a.Phase != street {
			deal(a.Phase)
			street, bet = a.Phase, 0
		}
		if a.Forced && a.Kind != game.Fold {
			h.BlindsOrStraddles[p] = a.To
			bet = max(bet, a.To)
			continue
		}
		h.Actions = append(h.Actions, formatAction(p, a, bet))
		bet = max(bet, a.To)
	}
	deal(game.Showdown)

	for _, shown := range rec.Settlement.Hands {
		h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", index[shown.Seat]+1, cards(shown.Cards)))
	}
	return h, nil
}

// formatAction renders a voluntary action for player index p, facing bet.
func formatAction(p int, a game.ActionRecord, bet int) string {
	player := fmt.Sprintf("p%d", p+1)
	switch a.Kind {
	case game.Fold:
		return player + " f"
	case game.Check, game.Call:
		return player + " cc"
	case game.AllIn:
		if a.To <= bet {
			return player + " cc"
		}
	}
	return fmt.Sprintf("%s cbr %d", player, a.To)
}

// playerOrder returns the dealt-in seat indexes starting from the small
// blind, which always posts first.
func playerOrder(rec *game.HandRecord) []int {
	start := slices.IndexFunc(rec.Seats, func(s game.SeatRecord) bool {
		return s.ID == rec.Actions[0].Seat
	})
	var order []int
	for step := range len(rec.Seats) {
		i := (start + step) % len(rec.Seats)
		if rec.Seats[i].Stack > 0 {
			order = append(order, i)
		}
	}
	return order
}

func phaseOfBoard(size int) game.Phase {
	switch size {
	case 3:
		return game.Flop
	case 4:
		return game.Turn
	default:
		return game.River
	}
}

func cards(cs []poker.Card) string {
	if len(cs) == 0 {
		return "????"
	}
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.String())
	}
	return b.String()
}

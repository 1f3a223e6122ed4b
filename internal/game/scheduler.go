package game

// TurnScheduler walks the seats in clockwise order.
type TurnScheduler struct {
	seats []*Seat
}

// nextInHand returns the first seat after from that was dealt into the hand,
// or -1 when there is none.
func (t TurnScheduler) nextInHand(from int) int {
	n := len(t.seats)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if t.seats[i].InHand {
			return i
		}
	}
	return -1
}

// Blinds returns the small and big blind seats for a button position.
// Heads-up the button posts the small blind.
func (t TurnScheduler) Blinds(dealer int) (sb, bb int) {
	if t.countInHand() == 2 {
		return dealer, t.nextInHand(dealer)
	}
	sb = t.nextInHand(dealer)
	return sb, t.nextInHand(sb)
}

func (t TurnScheduler) countInHand() int {
	var n int
	for _, s := range t.seats {
		if s.InHand {
			n++
		}
	}
	return n
}

// Start returns the seat at which action begins for a phase: the first seat
// after the big blind preflop, otherwise the first seat after the dealer.
func (t TurnScheduler) Start(phase Phase, dealer, bigBlind int) int {
	if phase == Preflop {
		return t.nextInHand(bigBlind)
	}
	return t.nextInHand(dealer)
}

// First returns the first seat at or after start that needs to act, or -1.
func (t TurnScheduler) First(round *BettingRound, start int) int {
	n := len(t.seats)
	return t.Next(round, (start-1+n)%n)
}

// Next returns the next seat after from that needs to act, skipping folded,
// all-in and sitting-out seats. It returns -1 after a full circle with no
// candidate.
func (t TurnScheduler) Next(round *BettingRound, from int) int {
	n := len(t.seats)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if round.NeedsAction(t.seats, i) {
			return i
		}
	}
	return -1
}

// Order returns every in-hand seat index starting with the first seat after
// the dealer. Used for dealing and odd chip assignment.
func (t TurnScheduler) Order(dealer int) []int {
	n := len(t.seats)
	order := make([]int, 0, n)
	for step := 1; step <= n; step++ {
		i := (dealer + step) % n
		if t.seats[i].InHand {
			order = append(order, i)
		}
	}
	return order
}

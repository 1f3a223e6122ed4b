package game

// BettingRound tracks one street of betting. It is created fresh for every
// phase and seeded with the blinds preflop.
type BettingRound struct {
	Phase      Phase
	CurrentBet int
	// MinRaise is the smallest legal raise increment over CurrentBet.
	MinRaise      int
	BigBlind      int
	LastAggressor string
	RoundStart    int
	Actions       []ActionRecord

	// acted[i] is set when seat i needs no further action at the current
	// level unless someone bets or raises. closed[i] is set once seat i has
	// made a voluntary decision since the last full bet or raise; a short
	// all-in does not clear it, so it cannot reopen raising.
	acted  []bool
	closed []bool
}

func newBettingRound(phase Phase, bigBlind, seats int) *BettingRound {
	return &BettingRound{
		Phase:      phase,
		MinRaise:   bigBlind,
		BigBlind:   bigBlind,
		RoundStart: -1,
		acted:      make([]bool, seats),
		closed:     make([]bool, seats),
	}
}

// markPosted counts the big blind's post as its action for the round, so
// the round can close without offering it an option.
func (r *BettingRound) markPosted(i int) {
	r.acted[i] = true
}

// Acted reports whether seat i has acted since the last full raise.
func (r *BettingRound) Acted(i int) bool {
	return r.acted[i]
}

// post applies a forced blind. It leaves MinRaise at the big blind and does
// not close raising for the seat.
func (r *BettingRound) post(seat *Seat, amount int) ActionRecord {
	amount = min(amount, seat.Stack)
	seat.pay(amount)
	r.CurrentBet = max(r.CurrentBet, seat.RoundContribution)
	rec := ActionRecord{
		Seat:   seat.ID,
		Phase:  r.Phase,
		Kind:   Raise,
		Amount: amount,
		To:     seat.RoundContribution,
		AllIn:  seat.AllIn,
		Forced: true,
	}
	r.Actions = append(r.Actions, rec)
	return rec
}

// canRaise reports whether seat i may put in more than a call. Action is not
// reopened by a short all-in, and there must be someone left to respond.
func (r *BettingRound) canRaise(seats []*Seat, i int) bool {
	if r.closed[i] {
		return false
	}
	for j, s := range seats {
		if j != i && s.canAct() {
			return true
		}
	}
	return false
}

// Validate checks an action for seat i without modifying anything.
func (r *BettingRound) Validate(seats []*Seat, i int, kind ActionKind, amount int) error {
	_, err := r.resolve(seats, i, kind, amount)
	return err
}

// resolve validates an action and returns the round contribution the seat
// will have after it.
func (r *BettingRound) resolve(seats []*Seat, i int, kind ActionKind, amount int) (int, error) {
	seat := seats[i]
	c := seat.RoundContribution
	allInTo := c + seat.Stack

	switch kind {
	case Fold:
		return c, nil

	case Check:
		if c != r.CurrentBet {
			return 0, illegal(seat, kind, amount, ReasonCannotCheck)
		}
		return c, nil

	case Call:
		if c >= r.CurrentBet {
			return 0, illegal(seat, kind, amount, ReasonNothingToCall)
		}
		return min(r.CurrentBet, allInTo), nil

	case Bet, Raise:
		if kind == Bet && r.CurrentBet > 0 {
			return 0, illegal(seat, kind, amount, ReasonBetFacingBet)
		}
		if kind == Raise && r.CurrentBet == 0 {
			return 0, illegal(seat, kind, amount, ReasonNoBetToRaise)
		}
		return r.resolveRaise(seats, i, kind, amount)

	case AllIn:
		if seat.Stack == 0 {
			return 0, illegal(seat, kind, amount, ReasonInsufficientChips)
		}
		if allInTo <= r.CurrentBet {
			return allInTo, nil
		}
		return r.resolveRaise(seats, i, kind, allInTo)
	}

	return 0, illegal(seat, kind, amount, ReasonUnknownAction)
}

func (r *BettingRound) resolveRaise(seats []*Seat, i int, kind ActionKind, to int) (int, error) {
	seat := seats[i]
	if !r.canRaise(seats, i) {
		return 0, illegal(seat, kind, to, ReasonRaiseClosed)
	}
	if to-seat.RoundContribution > seat.Stack {
		return 0, illegal(seat, kind, to, ReasonInsufficientChips)
	}
	if to <= r.CurrentBet {
		return 0, illegal(seat, kind, to, ReasonUnderRaise)
	}
	// Anything short of a full raise is only allowed as an all-in.
	if to < r.CurrentBet+r.MinRaise && to-seat.RoundContribution != seat.Stack {
		return 0, illegal(seat, kind, to, ReasonUnderRaise)
	}
	return to, nil
}

// Apply validates and applies an action for seat i. On error nothing changes.
func (r *BettingRound) Apply(seats []*Seat, i int, kind ActionKind, amount int) (ActionRecord, error) {
	to, err := r.resolve(seats, i, kind, amount)
	if err != nil {
		return ActionRecord{}, err
	}

	seat := seats[i]
	paid := to - seat.RoundContribution
	if kind == Fold {
		seat.Folded = true
	} else {
		seat.pay(paid)
	}

	if to > r.CurrentBet {
		if increment := to - r.CurrentBet; increment >= r.MinRaise {
			r.MinRaise = increment
			clear(r.acted)
			clear(r.closed)
		}
		r.CurrentBet = to
		r.LastAggressor = seat.ID
	}
	r.acted[i] = true
	r.closed[i] = true

	rec := ActionRecord{
		Seat:   seat.ID,
		Phase:  r.Phase,
		Kind:   kind,
		Amount: paid,
		To:     seat.RoundContribution,
		AllIn:  seat.AllIn,
	}
	r.Actions = append(r.Actions, rec)
	return rec, nil
}

// NeedsAction reports whether seat i still has to act this round.
func (r *BettingRound) NeedsAction(seats []*Seat, i int) bool {
	s := seats[i]
	return s.canAct() && (!r.acted[i] || s.RoundContribution < r.CurrentBet)
}

// Complete reports whether no more actions are needed this round.
func (r *BettingRound) Complete(seats []*Seat) bool {
	var live, active int
	last := -1
	for i, s := range seats {
		if s.live() {
			live++
		}
		if s.canAct() {
			active++
			last = i
		}
	}
	switch {
	case live <= 1, active == 0:
		return true
	case active == 1:
		// Nobody left to bet against once the last seat has matched.
		return seats[last].RoundContribution >= r.CurrentBet
	}
	for i := range seats {
		if r.NeedsAction(seats, i) {
			return false
		}
	}
	return true
}

// Legal lists what seat i may do and the raise bounds.
func (r *BettingRound) Legal(seats []*Seat, i int, pot int) LegalActions {
	seat := seats[i]
	la := LegalActions{Seat: seat.ID}
	if !seat.canAct() {
		return la
	}

	c := seat.RoundContribution
	toCall := min(r.CurrentBet-c, seat.Stack)
	la.ToCall = toCall
	la.Actions = append(la.Actions, Fold)
	if toCall == 0 {
		la.Actions = append(la.Actions, Check)
	} else {
		la.Actions = append(la.Actions, Call)
		la.PotOdds = float64(toCall) / float64(pot+toCall)
	}

	allInTo := c + seat.Stack
	if allInTo > r.CurrentBet && r.canRaise(seats, i) {
		if r.CurrentBet == 0 {
			la.Actions = append(la.Actions, Bet)
		} else {
			la.Actions = append(la.Actions, Raise)
		}
		la.MinRaiseTo = min(r.CurrentBet+r.MinRaise, allInTo)
		la.MaxRaiseTo = allInTo
		la.Actions = append(la.Actions, AllIn)
	} else if allInTo <= r.CurrentBet {
		la.Actions = append(la.Actions, AllIn)
	}
	return la
}

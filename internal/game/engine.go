package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/gameid"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

// Engine runs hands at one table. It is synchronous and not safe for
// concurrent use; callers serialize access (see internal/table).
type Engine struct {
	cfg    Config
	seats  []*Seat
	sched  TurnScheduler
	logger *log.Logger
	hlog   *log.Logger
	bus    EventBus

	rng      *rand.Rand
	newDeck  func(seed int64) *poker.Deck
	newID    func() string
	nextSeed *int64

	state      State
	phase      Phase
	dealer     int
	sb, bb     int
	actor      int
	handID     string
	seed       int64
	deck       *poker.Deck
	board      []poker.Card
	round      *BettingRound
	settlement *Settlement
	record     *HandRecord
}

// HandStart describes a freshly dealt hand.
type HandStart struct {
	HandID     string
	Seed       int64
	Dealer     string
	SmallBlind string
	BigBlind   string
	Blinds     []ActionRecord
	// Actor is empty when the blinds left nobody able to act.
	Actor string
}

// ActionOutcome is the result of an accepted action.
type ActionOutcome struct {
	Action        ActionRecord
	NextActor     string
	RoundComplete bool
	// HandComplete is set when all but one seat folded.
	HandComplete bool
	Settlement   *Settlement
}

// PhaseOutcome is the result of AdvancePhase.
type PhaseOutcome struct {
	Phase         Phase
	Dealt         []poker.Card
	Board         []poker.Card
	NextActor     string
	RoundComplete bool
	HandComplete  bool
	Settlement    *Settlement
}

// NewEngine validates the table and returns an idle engine.
func NewEngine(cfg Config, seats []SeatConfig, opts ...Option) (*Engine, error) {
	if cfg.SmallBlind <= 0 || cfg.BigBlind < cfg.SmallBlind {
		return nil, fmt.Errorf("%w: blinds %d/%d", ErrInvalidConfig, cfg.SmallBlind, cfg.BigBlind)
	}
	if len(seats) < MinSeats || len(seats) > MaxSeats {
		return nil, fmt.Errorf("%w: %d seats, need %d-%d", ErrInvalidConfig, len(seats), MinSeats, MaxSeats)
	}
	if cfg.Button < 0 || cfg.Button >= len(seats) {
		return nil, fmt.Errorf("%w: button %d out of range", ErrInvalidConfig, cfg.Button)
	}

	e := &Engine{
		cfg:    cfg,
		dealer: -1,
		actor:  -1,
	}
	seen := make(map[string]bool, len(seats))
	for _, sc := range seats {
		switch {
		case sc.ID == "":
			return nil, fmt.Errorf("%w: empty seat ID", ErrInvalidConfig)
		case seen[sc.ID]:
			return nil, fmt.Errorf("%w: duplicate seat ID %q", ErrInvalidConfig, sc.ID)
		case sc.Stack < 0:
			return nil, fmt.Errorf("%w: seat %q has negative stack", ErrInvalidConfig, sc.ID)
		}
		seen[sc.ID] = true
		name := sc.Name
		if name == "" {
			name = sc.ID
		}
		e.seats = append(e.seats, &Seat{ID: sc.ID, Name: name, Stack: sc.Stack})
	}
	e.sched = TurnScheduler{seats: e.seats}

	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.rng == nil {
		e.rng = randutil.New(randutil.Seed(0))
	}
	if e.newDeck == nil {
		e.newDeck = shuffledDeck
	}
	if e.newID == nil {
		e.newID = gameid.Generate
	}
	e.hlog = e.logger
	return e, nil
}

// StartHand moves the button, shuffles, deals and posts the blinds.
func (e *Engine) StartHand() (*HandStart, error) {
	switch e.state {
	case StateDealing, StateBetting, StateShowdown:
		return nil, ErrHandInProgress
	}

	var funded int
	for _, s := range e.seats {
		if s.Stack > 0 {
			funded++
		}
	}
	if funded < MinSeats {
		return nil, fmt.Errorf("%w: %d seats with chips", ErrNotEnoughPlayers, funded)
	}

	e.state = StateDealing
	for _, s := range e.seats {
		s.resetForHand()
	}
	prevDealer := e.dealer
	if e.dealer < 0 {
		e.dealer = e.cfg.Button
		if !e.seats[e.dealer].InHand {
			e.dealer = e.sched.nextInHand(e.dealer)
		}
	} else {
		e.dealer = e.sched.nextInHand(e.dealer)
	}
	e.sb, e.bb = e.sched.Blinds(e.dealer)
	e.seats[e.dealer].Dealer = true
	e.seats[e.sb].SmallBlind = true
	e.seats[e.bb].BigBlind = true

	e.seed = e.drawSeed()
	e.handID = e.newID()
	e.hlog = e.logger.With("hand", e.handID)
	e.deck = e.newDeck(e.seed)
	e.board = nil
	e.settlement = nil
	e.phase = Preflop
	e.round = newBettingRound(Preflop, e.cfg.BigBlind, len(e.seats))
	e.record = e.newRecord()

	if err := e.dealHoleCards(); err != nil {
		e.abort(err)
		e.dealer = prevDealer
		return nil, fmt.Errorf("deal hole cards: %w", err)
	}

	blinds := []ActionRecord{
		e.round.post(e.seats[e.sb], e.cfg.SmallBlind),
		e.round.post(e.seats[e.bb], e.cfg.BigBlind),
	}
	e.record.Actions = append(e.record.Actions, blinds...)
	if !e.cfg.BigBlindOption && !e.seats[e.bb].AllIn {
		e.round.markPosted(e.bb)
	}

	e.state = StateBetting
	e.startRound()

	hs := &HandStart{
		HandID:     e.handID,
		Seed:       e.seed,
		Dealer:     e.seats[e.dealer].ID,
		SmallBlind: e.seats[e.sb].ID,
		BigBlind:   e.seats[e.bb].ID,
		Blinds:     blinds,
		Actor:      e.CurrentActor(),
	}
	e.hlog.Info("hand started", "button", hs.Dealer, "players", funded, "seed", e.seed)
	e.publish(HandStartedEvent{
		HandID:     e.handID,
		Seed:       e.seed,
		Dealer:     hs.Dealer,
		SmallBlind: hs.SmallBlind,
		BigBlind:   hs.BigBlind,
		Seats:      e.inHandIDs(),
	})
	return hs, nil
}

// SubmitAction applies an action for the current actor. Amount is the round
// total for bet and raise and ignored otherwise.
func (e *Engine) SubmitAction(seatID string, kind ActionKind, amount int) (ActionOutcome, error) {
	if e.state != StateBetting {
		return ActionOutcome{}, ErrNoHand
	}
	i, err := e.seatIndex(seatID)
	if err != nil {
		return ActionOutcome{}, err
	}
	if i != e.actor {
		return ActionOutcome{}, illegal(e.seats[i], kind, amount, ReasonNotYourTurn)
	}

	rec, err := e.round.Apply(e.seats, i, kind, amount)
	if err != nil {
		e.hlog.Debug("rejected action", "seat", seatID, "action", kind, "amount", amount, "err", err)
		return ActionOutcome{}, err
	}
	e.record.Actions = append(e.record.Actions, rec)
	e.hlog.Debug("action", "seat", seatID, "action", kind, "paid", rec.Amount, "to", rec.To, "all_in", rec.AllIn)
	e.publish(ActionAppliedEvent{HandID: e.handID, Action: rec, PotTotal: e.PotTotal()})

	out := ActionOutcome{Action: rec}
	if e.liveCount() == 1 {
		st, err := e.finish(false)
		if err != nil {
			return ActionOutcome{}, err
		}
		out.RoundComplete = true
		out.HandComplete = true
		out.Settlement = st
		return out, nil
	}

	if e.round.Complete(e.seats) {
		e.actor = -1
		out.RoundComplete = true
	} else {
		e.actor = e.sched.Next(e.round, i)
		out.NextActor = e.CurrentActor()
	}
	return out, nil
}

// AdvancePhase deals the next street once the betting round is complete. From
// the river it goes to showdown and settles the hand.
func (e *Engine) AdvancePhase() (PhaseOutcome, error) {
	if e.state != StateBetting {
		return PhaseOutcome{}, ErrNoHand
	}
	if !e.round.Complete(e.seats) {
		return PhaseOutcome{}, ErrNotComplete
	}

	for _, s := range e.seats {
		s.RoundContribution = 0
	}

	if e.phase == River {
		e.phase = Showdown
		e.state = StateShowdown
		e.publish(PhaseAdvancedEvent{HandID: e.handID, Phase: Showdown, Board: slices.Clone(e.board)})
		st, err := e.finish(true)
		if err != nil {
			return PhaseOutcome{}, err
		}
		return PhaseOutcome{
			Phase:         Showdown,
			Board:         slices.Clone(e.board),
			RoundComplete: true,
			HandComplete:  true,
			Settlement:    st,
		}, nil
	}

	next := e.phase + 1
	dealt, err := e.deck.Draw(next.boardSize() - len(e.board))
	if err != nil {
		e.abort(err)
		return PhaseOutcome{}, fmt.Errorf("deal %s: %w", next, err)
	}
	e.board = append(e.board, dealt...)
	e.phase = next
	e.round = newBettingRound(next, e.cfg.BigBlind, len(e.seats))
	e.startRound()

	e.hlog.Debug("phase advanced", "phase", next, "board", poker.FormatCards(e.board), "pot", e.PotTotal())
	e.publish(PhaseAdvancedEvent{HandID: e.handID, Phase: next, Board: slices.Clone(e.board)})

	return PhaseOutcome{
		Phase:         next,
		Dealt:         dealt,
		Board:         slices.Clone(e.board),
		NextActor:     e.CurrentActor(),
		RoundComplete: e.actor < 0,
	}, nil
}

// Abandon cancels the running hand. Seats fold in turn order starting with
// the current actor until one remains, and that seat takes the pot.
func (e *Engine) Abandon() (*Settlement, error) {
	if e.state != StateBetting {
		return nil, ErrNoHand
	}
	start := e.actor
	if start < 0 {
		start = e.round.RoundStart
	}
	n := len(e.seats)
	for step := 0; step < n && e.liveCount() > 1; step++ {
		s := e.seats[(start+step)%n]
		if !s.live() {
			continue
		}
		s.Folded = true
		e.record.Actions = append(e.record.Actions, ActionRecord{
			Seat:   s.ID,
			Phase:  e.phase,
			Kind:   Fold,
			To:     s.RoundContribution,
			Forced: true,
		})
	}
	e.record.Abandoned = true
	e.hlog.Warn("hand abandoned", "phase", e.phase)
	return e.finish(false)
}

// startRound positions the first actor of the current round.
func (e *Engine) startRound() {
	start := e.sched.Start(e.phase, e.dealer, e.bb)
	e.round.RoundStart = start
	e.actor = -1
	if !e.round.Complete(e.seats) {
		e.actor = e.sched.First(e.round, start)
	}
}

func (e *Engine) dealHoleCards() error {
	order := e.sched.Order(e.dealer)
	for range 2 {
		for _, i := range order {
			cards, err := e.deck.Draw(1)
			if err != nil {
				return err
			}
			e.seats[i].HoleCards = append(e.seats[i].HoleCards, cards[0])
		}
	}
	for _, i := range order {
		e.record.HoleCards[e.seats[i].ID] = slices.Clone(e.seats[i].HoleCards)
	}
	return nil
}

// finish settles the pot and returns the engine to a settled state.
func (e *Engine) finish(showdown bool) (*Settlement, error) {
	st, err := settle(e.seats, e.sched.Order(e.dealer), e.board, showdown)
	if err != nil {
		return nil, fmt.Errorf("settle: %w", err)
	}
	for _, s := range e.seats {
		s.Stack += st.Payouts[s.ID]
		s.RoundContribution = 0
		s.HandContribution = 0
	}
	e.settlement = st
	e.state = StateSettled
	e.actor = -1
	e.record.Board = slices.Clone(e.board)
	e.record.Settlement = st

	e.hlog.Info("hand settled", "pot", st.Total(), "winners", st.Winners(), "showdown", showdown)
	e.publish(HandSettledEvent{HandID: e.handID, Settlement: st, Abandoned: e.record.Abandoned})
	return st, nil
}

// abort refunds every contribution and returns to idle.
func (e *Engine) abort(cause error) {
	for _, s := range e.seats {
		s.Stack += s.HandContribution
		s.resetForHand()
		s.InHand = false
	}
	e.state = StateIdle
	e.actor = -1
	e.round = nil
	e.board = nil
	e.record = nil
	e.hlog.Error("hand aborted", "err", cause)
}

func (e *Engine) drawSeed() int64 {
	if e.nextSeed != nil {
		seed := *e.nextSeed
		e.nextSeed = nil
		return seed
	}
	return randutil.Child(e.rng)
}

func (e *Engine) publish(ev Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func (e *Engine) seatIndex(id string) (int, error) {
	for i, s := range e.seats {
		if s.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownSeat, id)
}

func (e *Engine) liveCount() int {
	var n int
	for _, s := range e.seats {
		if s.live() {
			n++
		}
	}
	return n
}

func (e *Engine) inHandIDs() []string {
	var ids []string
	for _, i := range e.sched.Order(e.dealer) {
		ids = append(ids, e.seats[i].ID)
	}
	return ids
}

// State returns the outer engine state.
func (e *Engine) State() State { return e.state }

// Phase returns the current street.
func (e *Engine) Phase() Phase { return e.phase }

// HandID returns the ID of the current or last hand.
func (e *Engine) HandID() string { return e.handID }

// CurrentActor returns the seat to act, or "" when nobody is.
func (e *Engine) CurrentActor() string {
	if e.state != StateBetting || e.actor < 0 {
		return ""
	}
	return e.seats[e.actor].ID
}

// RoundComplete reports whether the current betting round needs no more
// actions.
func (e *Engine) RoundComplete() bool {
	return e.state == StateBetting && e.round.Complete(e.seats)
}

// Dealer returns the button seat of the current or last hand.
func (e *Engine) Dealer() string {
	if e.dealer < 0 {
		return ""
	}
	return e.seats[e.dealer].ID
}

// Board returns the community cards.
func (e *Engine) Board() []poker.Card { return slices.Clone(e.board) }

// Pots returns the current pot layers.
func (e *Engine) Pots() []Pot { return BuildPots(e.seats) }

// PotTotal returns every chip contributed this hand.
func (e *Engine) PotTotal() int {
	var total int
	for _, s := range e.seats {
		total += s.HandContribution
	}
	return total
}

// Settlement returns the report of the last settled hand, or nil.
func (e *Engine) Settlement() *Settlement { return e.settlement }

// Seats returns copies of every seat.
func (e *Engine) Seats() []Seat {
	out := make([]Seat, len(e.seats))
	for i, s := range e.seats {
		out[i] = *s
		out[i].HoleCards = slices.Clone(s.HoleCards)
	}
	return out
}

// TotalChips returns the chips at the table, in stacks or in the pot.
func (e *Engine) TotalChips() int {
	var total int
	for _, s := range e.seats {
		total += s.Stack + s.HandContribution
	}
	return total
}

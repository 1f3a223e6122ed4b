package game

import (
	"fmt"
	"io"
	"maps"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/lox/holdem/poker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HandRecord is the durable record of one hand: enough to audit it and to
// replay it from the shuffle seed.
type HandRecord struct {
	HandID         string                  `json:"hand_id"`
	Seed           int64                   `json:"seed"`
	Button         int                     `json:"button"`
	SmallBlind     int                     `json:"small_blind"`
	BigBlind       int                     `json:"big_blind"`
	BigBlindOption bool                    `json:"big_blind_option,omitempty"`
	Seats          []SeatRecord            `json:"seats"`
	HoleCards      map[string][]poker.Card `json:"hole_cards"`
	Actions        []ActionRecord          `json:"actions"`
	Board          []poker.Card            `json:"board"`
	Settlement     *Settlement             `json:"settlement,omitempty"`
	Abandoned      bool                    `json:"abandoned,omitempty"`
}

// SeatRecord is a seat and its stack before the blinds.
type SeatRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stack int    `json:"stack"`
}

func (e *Engine) newRecord() *HandRecord {
	rec := &HandRecord{
		HandID:         e.handID,
		Seed:           e.seed,
		Button:         e.dealer,
		SmallBlind:     e.cfg.SmallBlind,
		BigBlind:       e.cfg.BigBlind,
		BigBlindOption: e.cfg.BigBlindOption,
		HoleCards:      make(map[string][]poker.Card),
	}
	for _, s := range e.seats {
		rec.Seats = append(rec.Seats, SeatRecord{ID: s.ID, Name: s.Name, Stack: s.Stack})
	}
	return rec
}

// Record returns a copy of the current or last hand's record, or nil before
// the first hand.
func (e *Engine) Record() *HandRecord {
	if e.record == nil {
		return nil
	}
	rec := *e.record
	rec.Seats = slices.Clone(e.record.Seats)
	rec.Actions = slices.Clone(e.record.Actions)
	rec.Board = slices.Clone(e.record.Board)
	rec.HoleCards = maps.Clone(e.record.HoleCards)
	return &rec
}

// Net returns each seat's chip result for the hand: winnings minus
// contributions.
func (r *HandRecord) Net() map[string]int {
	net := make(map[string]int, len(r.Seats))
	for _, s := range r.Seats {
		net[s.ID] = 0
	}
	for _, a := range r.Actions {
		net[a.Seat] -= a.Amount
	}
	if r.Settlement != nil {
		for id, won := range r.Settlement.Payouts {
			net[id] += won
		}
	}
	return net
}

// WriteJSON writes the record as indented JSON.
func (r *HandRecord) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadRecord decodes a record written by WriteJSON.
func ReadRecord(r io.Reader) (*HandRecord, error) {
	var rec HandRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode hand record: %w", err)
	}
	return &rec, nil
}

// Replay replays a recorded hand on a fresh engine seeded with the recorded
// shuffle seed and returns its settlement. Extra options (for example
// WithDeckSource for stacked decks) are applied to that engine. It fails
// with ErrReplayMismatch if any action, the board or the payouts differ.
func Replay(rec *HandRecord, opts ...Option) (*Settlement, error) {
	seats := make([]SeatConfig, len(rec.Seats))
	for i, s := range rec.Seats {
		seats[i] = SeatConfig{ID: s.ID, Name: s.Name, Stack: s.Stack}
	}
	cfg := Config{
		SmallBlind:     rec.SmallBlind,
		BigBlind:       rec.BigBlind,
		Button:         rec.Button,
		BigBlindOption: rec.BigBlindOption,
	}
	opts = append([]Option{
		withHandSeed(rec.Seed),
		WithIDGenerator(func() string { return rec.HandID }),
	}, opts...)

	e, err := NewEngine(cfg, seats, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := e.StartHand(); err != nil {
		return nil, err
	}

	for _, want := range rec.Actions {
		if want.Forced {
			continue
		}
		for e.State() == StateBetting && e.CurrentActor() == "" {
			if _, err := e.AdvancePhase(); err != nil {
				return nil, fmt.Errorf("replay %s: %w", want, err)
			}
		}
		if actor := e.CurrentActor(); actor != want.Seat {
			return nil, fmt.Errorf("%w: expected %s, actor is %q", ErrReplayMismatch, want, actor)
		}
		out, err := e.SubmitAction(want.Seat, want.Kind, want.To)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReplayMismatch, want, err)
		}
		if out.Action != want {
			return nil, fmt.Errorf("%w: recorded %s, replayed %s", ErrReplayMismatch, want, out.Action)
		}
	}

	if rec.Abandoned {
		if _, err := e.Abandon(); err != nil {
			return nil, err
		}
	}
	for e.State() == StateBetting {
		if _, err := e.AdvancePhase(); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
	}

	st := e.Settlement()
	if st == nil {
		return nil, fmt.Errorf("%w: hand did not settle", ErrReplayMismatch)
	}
	if !slices.Equal(e.board, rec.Board) {
		return nil, fmt.Errorf("%w: board %s, recorded %s", ErrReplayMismatch,
			poker.FormatCards(e.board), poker.FormatCards(rec.Board))
	}
	if rec.Settlement != nil && !maps.Equal(st.Payouts, rec.Settlement.Payouts) {
		return nil, fmt.Errorf("%w: payouts %v, recorded %v", ErrReplayMismatch, st.Payouts, rec.Settlement.Payouts)
	}
	return st, nil
}

// Package table runs hands on a game engine by asking an Agent for each
// decision. All access to the engine is serialized by the Table.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/game"
)

// Decision is an agent's answer to a turn. Amount is the round total for bet
// and raise.
type Decision struct {
	Kind      game.ActionKind
	Amount    int
	Reasoning string
}

// Agent decides for one seat. Decide runs on its own goroutine and should
// return promptly once ctx is done.
type Agent interface {
	Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (Decision, error)
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, view game.Snapshot, legal game.LegalActions) (Decision, error)

func (f AgentFunc) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (Decision, error) {
	return f(ctx, view, legal)
}

// Table owns an engine and the agents sitting at it.
type Table struct {
	mu      sync.Mutex
	engine  *game.Engine
	agents  map[string]Agent
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the table logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithClock sets the clock used for decision timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) {
		t.clock = clock
	}
}

// WithTimeout folds a seat that has not decided within d. Zero disables the
// timer.
func WithTimeout(d time.Duration) Option {
	return func(t *Table) {
		t.timeout = d
	}
}

// New seats agents at the engine's table. Every seat needs an agent.
func New(engine *game.Engine, agents map[string]Agent, opts ...Option) (*Table, error) {
	for _, s := range engine.Seats() {
		if agents[s.ID] == nil {
			return nil, fmt.Errorf("no agent for seat %q", s.ID)
		}
	}
	t := &Table{
		engine: engine,
		agents: agents,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = quartz.NewReal()
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	t.logger = t.logger.WithPrefix("table")
	return t, nil
}

// PlayHand starts a hand and drives it to settlement. When ctx is cancelled
// the hand is abandoned; the abandoned settlement is returned together with
// the context error.
func (t *Table) PlayHand(ctx context.Context) (*game.Settlement, error) {
	t.mu.Lock()
	hs, err := t.engine.StartHand()
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}
	logger := t.logger.With("hand", hs.HandID)

	for {
		if err := ctx.Err(); err != nil {
			return t.abandon(logger, err)
		}

		t.mu.Lock()
		if t.engine.State() == game.StateSettled {
			st := t.engine.Settlement()
			t.mu.Unlock()
			return st, nil
		}
		actor := t.engine.CurrentActor()
		if actor == "" {
			_, err := t.engine.AdvancePhase()
			t.mu.Unlock()
			if err != nil {
				return nil, err
			}
			continue
		}
		view := t.engine.Snapshot(actor)
		legal, err := t.engine.LegalActions(actor)
		t.mu.Unlock()
		if err != nil {
			return nil, err
		}

		d, err := t.decide(ctx, logger, actor, view, legal)
		if err != nil {
			return t.abandon(logger, err)
		}
		if _, err := t.Submit(actor, d.Kind, d.Amount); err != nil {
			if !errors.Is(err, game.ErrIllegalAction) {
				return nil, err
			}
			logger.Warn("rejected decision", "seat", actor, "action", d.Kind, "amount", d.Amount, "err", err)
			fallback := passive(legal)
			if _, err := t.Submit(actor, fallback.Kind, fallback.Amount); err != nil {
				return nil, err
			}
		}
	}
}

// decide asks the seat's agent for a decision, folding on timeout and
// checking or folding when the agent fails.
func (t *Table) decide(ctx context.Context, logger *log.Logger, seat string, view game.Snapshot, legal game.LegalActions) (Decision, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		d   Decision
		err error
	}
	done := make(chan result, 1)
	agent := t.agents[seat]
	go func() {
		d, err := agent.Decide(ctx, view, legal)
		done <- result{d, err}
	}()

	var timedOut <-chan struct{}
	if t.timeout > 0 {
		fired := make(chan struct{})
		timer := t.clock.AfterFunc(t.timeout, func() {
			close(fired)
		})
		defer timer.Stop()
		timedOut = fired
	}

	select {
	case r := <-done:
		if r.err != nil {
			logger.Warn("agent failed", "seat", seat, "err", r.err)
			return passive(legal), nil
		}
		return r.d, nil
	case <-timedOut:
		logger.Warn("decision timeout", "seat", seat, "timeout", t.timeout)
		return Decision{Kind: game.Fold, Reasoning: "timeout"}, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

func (t *Table) abandon(logger *log.Logger, cause error) (*game.Settlement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.engine.State() != game.StateBetting {
		return t.engine.Settlement(), cause
	}
	logger.Warn("abandoning hand", "err", cause)
	st, err := t.engine.Abandon()
	if err != nil {
		return nil, errors.Join(cause, err)
	}
	return st, cause
}

// passive checks when it can and folds otherwise.
func passive(legal game.LegalActions) Decision {
	if legal.Can(game.Check) {
		return Decision{Kind: game.Check, Reasoning: "fallback"}
	}
	return Decision{Kind: game.Fold, Reasoning: "fallback"}
}

// Submit applies an action for a seat.
func (t *Table) Submit(seat string, kind game.ActionKind, amount int) (game.ActionOutcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.SubmitAction(seat, kind, amount)
}

// Snapshot returns the table as seen by viewer.
func (t *Table) Snapshot(viewer string) game.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Snapshot(viewer)
}

// Record returns the record of the current or last hand.
func (t *Table) Record() *game.HandRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Record()
}

// Seats returns a copy of every seat.
func (t *Table) Seats() []game.Seat {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Seats()
}

// Funded returns how many seats still have chips.
func (t *Table) Funded() int {
	var n int
	for _, s := range t.Seats() {
		if s.Stack > 0 {
			n++
		}
	}
	return n
}

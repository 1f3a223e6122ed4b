// Package sim plays many seeded sessions between bot strategies in parallel
// and aggregates the per-strategy results.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/statistics"
	"github.com/lox/holdem/internal/table"
)

// Config describes a batch of sessions. Each session seats one bot per
// strategy and plays Hands hands or until one seat holds every chip.
type Config struct {
	Sessions   int
	Workers    int
	Hands      int
	Seed       int64
	Strategies []string
	Stack      int
	SmallBlind int
	BigBlind   int
	// Bus, when set, receives the events of every session. It must be safe
	// for concurrent use.
	Bus    game.EventBus
	Logger *log.Logger
}

func (c *Config) defaults() error {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if len(c.Strategies) == 0 {
		c.Strategies = bot.Strategies
	}
	if c.Stack == 0 {
		c.Stack = 1000
	}
	if c.SmallBlind == 0 && c.BigBlind == 0 {
		c.SmallBlind, c.BigBlind = 10, 20
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	switch {
	case c.Sessions <= 0:
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	case c.Hands <= 0:
		return fmt.Errorf("hands must be positive, got %d", c.Hands)
	case len(c.Strategies) < game.MinSeats || len(c.Strategies) > game.MaxSeats:
		return fmt.Errorf("need %d-%d strategies, got %d", game.MinSeats, game.MaxSeats, len(c.Strategies))
	}
	return nil
}

// Report is the outcome of a batch.
type Report struct {
	Sessions int
	Hands    int
	Seed     int64
	// Strategies keeps the configured order; Stats is keyed by strategy.
	Strategies []string
	Stats      map[string]*statistics.Statistics
}

type sessionResult struct {
	hands int
	stats map[string]*statistics.Statistics
}

// Run plays every session. Session seeds are derived from cfg.Seed up front,
// so the report does not depend on scheduling.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = randutil.Seed(0)
	}

	master := randutil.New(cfg.Seed)
	seeds := make([]int64, cfg.Sessions)
	for i := range seeds {
		seeds[i] = randutil.Child(master)
	}

	results := make([]sessionResult, cfg.Sessions)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, seed := range seeds {
		g.Go(func() error {
			res, err := runSession(ctx, cfg, i, seed)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Sessions:   cfg.Sessions,
		Seed:       cfg.Seed,
		Strategies: cfg.Strategies,
		Stats:      make(map[string]*statistics.Statistics, len(cfg.Strategies)),
	}
	for _, name := range cfg.Strategies {
		report.Stats[name] = &statistics.Statistics{}
	}
	for _, res := range results {
		report.Hands += res.hands
		for name, s := range res.stats {
			report.Stats[name].Merge(s)
		}
	}
	return report, nil
}

// runSession plays one session. Strategies are rotated by the session index
// so each one sits in every position across sessions.
func runSession(ctx context.Context, cfg Config, index int, seed int64) (sessionResult, error) {
	n := len(cfg.Strategies)
	seats := make([]game.SeatConfig, n)
	strategyOf := make(map[string]string, n)
	agents := make(map[string]table.Agent, n)
	for j := range n {
		name := cfg.Strategies[(j+index)%n]
		id := fmt.Sprintf("s%d-%s", j, name)
		seats[j] = game.SeatConfig{ID: id, Name: name, Stack: cfg.Stack}
		strategyOf[id] = name

		agent, err := bot.New(name, randutil.New(seed+int64(j)+1), cfg.Logger)
		if err != nil {
			return sessionResult{}, err
		}
		agents[id] = agent
	}

	opts := []game.Option{game.WithSeed(seed), game.WithLogger(cfg.Logger)}
	if cfg.Bus != nil {
		opts = append(opts, game.WithEventBus(cfg.Bus))
	}
	engine, err := game.NewEngine(game.Config{
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Button:     index % n,
	}, seats, opts...)
	if err != nil {
		return sessionResult{}, err
	}
	tbl, err := table.New(engine, agents, table.WithLogger(cfg.Logger))
	if err != nil {
		return sessionResult{}, err
	}

	res := sessionResult{stats: make(map[string]*statistics.Statistics, n)}
	for _, name := range cfg.Strategies {
		res.stats[name] = &statistics.Statistics{}
	}
	for range cfg.Hands {
		st, err := tbl.PlayHand(ctx)
		if errors.Is(err, game.ErrNotEnoughPlayers) {
			break
		}
		if err != nil {
			return sessionResult{}, err
		}
		res.hands++
		for _, r := range handResults(tbl.Record(), st, cfg.BigBlind) {
			res.stats[strategyOf[r.seat]].Add(r.HandResult)
		}
	}
	return res, nil
}

type seatResult struct {
	seat string
	statistics.HandResult
}

// handResults converts a finished hand into one result per dealt-in seat.
func handResults(rec *game.HandRecord, st *game.Settlement, bigBlind int) []seatResult {
	net := rec.Net()
	reached := game.Preflop
	switch {
	case st.Showdown:
		reached = game.Showdown
	case len(rec.Board) == 5:
		reached = game.River
	case len(rec.Board) == 4:
		reached = game.Turn
	case len(rec.Board) == 3:
		reached = game.Flop
	}

	n := len(rec.Seats)
	var out []seatResult
	for i, s := range rec.Seats {
		if s.Stack == 0 {
			continue
		}
		out = append(out, seatResult{
			seat: s.ID,
			HandResult: statistics.HandResult{
				Net:      net[s.ID],
				BigBlind: bigBlind,
				Seed:     rec.Seed,
				Position: (i - rec.Button + n) % n,
				Showdown: st.Showdown,
				Pot:      st.Total(),
				Reached:  reached,
			},
		})
	}
	return out
}

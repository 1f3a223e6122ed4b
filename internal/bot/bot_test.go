package bot

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/table"
	"github.com/lox/holdem/poker"
)

var quiet = log.New(io.Discard)

func preflopView(hole string, stack int) game.Snapshot {
	return game.Snapshot{
		Phase:      game.Preflop,
		SmallBlind: 10,
		BigBlind:   20,
		CurrentBet: 20,
		PotTotal:   30,
		Actor:      "me",
		Seats: []game.SeatView{
			{ID: "me", Stack: stack, HoleCards: poker.MustParseCards(hole), HasCards: true},
		},
	}
}

var facingBlind = game.LegalActions{
	Seat:       "me",
	Actions:    []game.ActionKind{game.Fold, game.Call, game.Raise, game.AllIn},
	ToCall:     20,
	MinRaiseTo: 40,
	MaxRaiseTo: 1000,
	PotOdds:    0.4,
}

func TestNewKnowsEveryStrategy(t *testing.T) {
	t.Parallel()
	for _, name := range Strategies {
		agent, err := New(name, randutil.New(1), nil)
		require.NoError(t, err, name)
		assert.NotNil(t, agent)
	}
	_, err := New("shark", randutil.New(1), nil)
	require.ErrorContains(t, err, "unknown strategy")
}

func TestFoldBot(t *testing.T) {
	t.Parallel()
	bot := NewFoldBot(quiet)
	d, err := bot.Decide(context.Background(), preflopView("As Ah", 1000), facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Kind)

	d, err = bot.Decide(context.Background(), preflopView("As Ah", 1000), game.LegalActions{
		Actions: []game.ActionKind{game.Fold, game.Check, game.Bet, game.AllIn},
	})
	require.NoError(t, err)
	assert.Equal(t, game.Check, d.Kind)
}

func TestDecideHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCallBot(quiet).Decide(ctx, preflopView("As Ah", 1000), facingBlind)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCallBotShovesShortStack(t *testing.T) {
	t.Parallel()
	bot, err := New("call", nil, nil)
	require.NoError(t, err)

	d, err := bot.Decide(context.Background(), preflopView("7c 2d", 150), facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.AllIn, d.Kind)

	d, err = bot.Decide(context.Background(), preflopView("7c 2d", 1000), facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.Call, d.Kind)
}

func TestCallBotFoldsLargeRiverBet(t *testing.T) {
	t.Parallel()
	view := preflopView("7c 2d", 1000)
	view.Phase = game.River
	legal := game.LegalActions{Actions: []game.ActionKind{game.Fold, game.Call}, ToCall: 100, PotOdds: 0.4}

	d, err := NewCallBot(quiet).Decide(context.Background(), view, legal)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Kind)
}

func TestTAGBotPreflop(t *testing.T) {
	t.Parallel()
	bot := NewTAGBot(randutil.New(1), quiet)

	d, err := bot.Decide(context.Background(), preflopView("As Ah", 1000), facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, d.Kind)
	assert.Equal(t, 280, d.Amount)

	d, err = bot.Decide(context.Background(), preflopView("7c 2d", 1000), facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Kind)
}

func TestTAGBotBetsMadeHands(t *testing.T) {
	t.Parallel()
	view := preflopView("As Ah", 1000)
	view.Phase = game.Flop
	view.Board = poker.MustParseCards("Ad Kc 7h")
	view.CurrentBet = 0
	view.PotTotal = 100
	legal := game.LegalActions{
		Actions:    []game.ActionKind{game.Fold, game.Check, game.Bet, game.AllIn},
		MinRaiseTo: 20,
		MaxRaiseTo: 1000,
	}

	d, err := NewTAGBot(randutil.New(1), quiet).Decide(context.Background(), view, legal)
	require.NoError(t, err)
	assert.Equal(t, game.Bet, d.Kind)
	assert.Equal(t, 75, d.Amount)
}

func TestChartBotPushesShortStack(t *testing.T) {
	t.Parallel()
	bot := NewChartBot(quiet)

	d, err := bot.Decide(context.Background(), preflopView("As Kh", 300), facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.AllIn, d.Kind)

	raised := preflopView("7c 2d", 1000)
	raised.CurrentBet = 60
	d, err = bot.Decide(context.Background(), raised, facingBlind)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Kind)
}

// legalChecker fails the test when the wrapped agent answers with something
// outside its legal set.
type legalChecker struct {
	t     *testing.T
	agent table.Agent
}

func (c legalChecker) Decide(ctx context.Context, view game.Snapshot, legal game.LegalActions) (table.Decision, error) {
	d, err := c.agent.Decide(ctx, view, legal)
	if err != nil {
		return d, err
	}
	assert.True(c.t, legal.Can(d.Kind), "%s not in %v", d.Kind, legal.Actions)
	if d.Kind == game.Bet || d.Kind == game.Raise {
		assert.GreaterOrEqual(c.t, d.Amount, legal.MinRaiseTo)
		assert.LessOrEqual(c.t, d.Amount, legal.MaxRaiseTo)
	}
	return d, nil
}

func TestStrategiesOnlyMakeLegalDecisions(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)
	seats := make([]game.SeatConfig, len(Strategies))
	agents := make(map[string]table.Agent, len(Strategies))
	for i, name := range Strategies {
		id := fmt.Sprintf("%s-%d", name, i)
		seats[i] = game.SeatConfig{ID: id, Stack: 1000}
		agent, err := New(name, randutil.New(int64(i)), nil)
		require.NoError(t, err)
		agents[id] = legalChecker{t: t, agent: agent}
	}

	e, err := game.NewEngine(game.Config{SmallBlind: 10, BigBlind: 20}, seats, game.WithRand(rng))
	require.NoError(t, err)
	tbl, err := table.New(e, agents)
	require.NoError(t, err)

	for range 100 {
		if tbl.Funded() < 2 {
			break
		}
		_, err := tbl.PlayHand(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1000*len(Strategies), e.TotalChips())
}

package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/poker"
)

func playRecordedHand(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t, []int{500, 300, 800}, WithSeed(7))
	mustStart(t, e)
	mustAct(t, e, "p0", Raise, 60)
	mustAct(t, e, "p1", Call, 0)
	mustAct(t, e, "p2", Call, 0)
	mustAdvance(t, e)
	mustAct(t, e, "p1", Check, 0)
	mustAct(t, e, "p2", Bet, 100)
	mustAct(t, e, "p0", Fold, 0)
	mustAct(t, e, "p1", Call, 0)
	checkDown(t, e)
	return e
}

func TestRecordCapturesHand(t *testing.T) {
	t.Parallel()
	e := playRecordedHand(t)
	rec := e.Record()
	require.NotNil(t, rec)

	assert.Equal(t, e.HandID(), rec.HandID)
	assert.Equal(t, 0, rec.Button)
	assert.Equal(t, []SeatRecord{
		{ID: "p0", Name: "p0", Stack: 500},
		{ID: "p1", Name: "p1", Stack: 300},
		{ID: "p2", Name: "p2", Stack: 800},
	}, rec.Seats)
	assert.Len(t, rec.HoleCards, 3)
	assert.Len(t, rec.Board, 5)
	assert.True(t, rec.Actions[0].Forced)
	assert.True(t, rec.Actions[1].Forced)
	assert.Equal(t, "p0 raise to 60", rec.Actions[2].String())

	assert.Equal(t, map[string]int{
		"p0": -60,
		"p1": e.Seats()[1].Stack - 300,
		"p2": e.Seats()[2].Stack - 800,
	}, rec.Net())

	// The record handed out is a copy.
	rec.Actions[0].Amount = 999
	assert.Equal(t, 10, e.Record().Actions[0].Amount)
}

func TestRecordJSONRoundTrip(t *testing.T) {
	t.Parallel()
	e := playRecordedHand(t)
	rec := e.Record()

	var buf bytes.Buffer
	require.NoError(t, rec.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"kind": "raise"`)
	assert.Contains(t, buf.String(), `"phase": "flop"`)

	decoded, err := ReadRecord(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec.Actions, decoded.Actions)
	assert.Equal(t, rec.Board, decoded.Board)
	assert.Equal(t, rec.HoleCards, decoded.HoleCards)
	assert.Equal(t, rec.Settlement.Payouts, decoded.Settlement.Payouts)

	st, err := Replay(decoded)
	require.NoError(t, err)
	assert.Equal(t, rec.Settlement.Payouts, st.Payouts)
}

func TestReadRecordRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := ReadRecord(strings.NewReader(`{"actions": [{"kind": "shove"}]}`))
	require.Error(t, err)
}

func TestReplayDetectsTampering(t *testing.T) {
	t.Parallel()
	e := playRecordedHand(t)

	tests := []struct {
		name   string
		tamper func(*HandRecord)
	}{
		{"different seed", func(r *HandRecord) { r.Seed++ }},
		{"raise amount", func(r *HandRecord) { r.Actions[2].To = 80 }},
		{"wrong actor", func(r *HandRecord) { r.Actions[2].Seat = "p1" }},
		{"payouts", func(r *HandRecord) {
			r.Settlement = &Settlement{Payouts: map[string]int{"p0": 1}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := e.Record()
			rec.Actions = append([]ActionRecord(nil), rec.Actions...)
			tc.tamper(rec)
			_, err := Replay(rec)
			require.ErrorIs(t, err, ErrReplayMismatch)
		})
	}
}

func TestReplayWithStackedDeck(t *testing.T) {
	t.Parallel()
	deck := "Ks Qs As Kh Qh Ah 2c 7d 9h 3s 4c"
	e := newTestEngine(t, []int{50, 100, 200}, stacked(deck))
	mustStart(t, e)
	mustAct(t, e, "p0", AllIn, 0)
	mustAct(t, e, "p1", AllIn, 0)
	mustAct(t, e, "p2", Call, 0)
	for e.State() == StateBetting {
		mustAdvance(t, e)
	}

	st, err := Replay(e.Record(), stacked(deck))
	require.NoError(t, err)
	assert.Equal(t, e.Settlement().Payouts, st.Payouts)
	assert.Equal(t, poker.MustParseCards("2c 7d 9h 3s 4c"), e.Record().Board)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
)

const sample = `
table {
  small_blind       = 5
  big_blind         = 10
  button            = 1
  big_blind_option  = true
  action_timeout_ms = 250
  seed              = 99
}

seat "alice" {
  name     = "Alice"
  stack    = 500
  strategy = "tight"
}

seat "bob" {
  stack = 800
}

seat "carol" {
  strategy = "chart"
}
`

func TestParse(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(sample), "table.hcl")
	require.NoError(t, err)

	assert.Equal(t, game.Config{SmallBlind: 5, BigBlind: 10, Button: 1, BigBlindOption: true}, cfg.Engine())
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout())
	assert.Equal(t, int64(99), cfg.Table.Seed)

	assert.Equal(t, []game.SeatConfig{
		{ID: "alice", Name: "Alice", Stack: 500},
		{ID: "bob", Name: "bob", Stack: 800},
		{ID: "carol", Name: "carol", Stack: 1000},
	}, cfg.SeatConfigs())
	assert.Equal(t, "tight", cfg.Seats[0].Strategy)
	assert.Equal(t, "call", cfg.Seats[1].Strategy)
	assert.Equal(t, "chart", cfg.Seats[2].Strategy)
}

func TestParseDefaultsTable(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`
seat "a" {}
seat "b" {}
`), "seats.hcl")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Table.SmallBlind)
	assert.Equal(t, 20, cfg.Table.BigBlind)
	assert.Zero(t, cfg.Timeout())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `table {`, "failed to parse HCL file"},
		{"unknown attribute", "table {\n colour = 1\n}\n", "failed to decode HCL"},
		{"one seat", `seat "a" {}`, "need 2-10 seats"},
		{"duplicate", "seat \"a\" {}\nseat \"a\" {}\n", `seat "a" declared twice`},
		{"strategy", "seat \"a\" {}\nseat \"b\" {\n strategy = \"shark\"\n}\n", `invalid strategy "shark"`},
		{"blinds", "table {\n small_blind = 20\n big_blind = 10\n}\nseat \"a\" {}\nseat \"b\" {}\n", "below small blind"},
		{"button", "table {\n button = 2\n}\nseat \"a\" {}\nseat \"b\" {}\n", "button 2 out of range"},
		{"timeout", "table {\n action_timeout_ms = -1\n}\nseat \"a\" {}\nseat \"b\" {}\n", "must not be negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), "bad.hcl")
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	path := filepath.Join(dir, "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Seats, 3)
}

func TestEngineAcceptsConfig(t *testing.T) {
	t.Parallel()
	cfg := Default()
	_, err := game.NewEngine(cfg.Engine(), cfg.SeatConfigs(), game.WithSeed(1))
	require.NoError(t, err)
}

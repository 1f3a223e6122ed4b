// Package config loads table configuration from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
)

// Config is a table and the bots seated at it.
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	Seats []SeatSettings `hcl:"seat,block"`
}

// TableSettings holds the stakes and timing.
type TableSettings struct {
	SmallBlind      int   `hcl:"small_blind,optional"`
	BigBlind        int   `hcl:"big_blind,optional"`
	Button          int   `hcl:"button,optional"`
	BigBlindOption  bool  `hcl:"big_blind_option,optional"`
	ActionTimeoutMS int   `hcl:"action_timeout_ms,optional"`
	Seed            int64 `hcl:"seed,optional"`
}

// SeatSettings is one seat, labelled by its ID.
type SeatSettings struct {
	ID       string `hcl:"id,label"`
	Name     string `hcl:"name,optional"`
	Stack    int    `hcl:"stack,optional"`
	Strategy string `hcl:"strategy,optional"`
}

const (
	defaultSmallBlind = 10
	defaultBigBlind   = 20
	defaultStack      = 1000
	defaultStrategy   = "call"
)

// Default returns a four-handed table of mixed bots.
func Default() *Config {
	return &Config{
		Table: &TableSettings{
			SmallBlind: defaultSmallBlind,
			BigBlind:   defaultBigBlind,
		},
		Seats: []SeatSettings{
			{ID: "alice", Name: "Alice", Stack: defaultStack, Strategy: "tight"},
			{ID: "bob", Name: "Bob", Stack: defaultStack, Strategy: "call"},
			{ID: "carol", Name: "Carol", Stack: defaultStack, Strategy: "aggressive"},
			{ID: "dave", Name: "Dave", Stack: defaultStack, Strategy: "random"},
		},
	}
}

// Load reads an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %w", diags)
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.SmallBlind == 0 && c.Table.BigBlind == 0 {
		c.Table.SmallBlind, c.Table.BigBlind = defaultSmallBlind, defaultBigBlind
	}
	for i := range c.Seats {
		s := &c.Seats[i]
		if s.Name == "" {
			s.Name = s.ID
		}
		if s.Stack == 0 {
			s.Stack = defaultStack
		}
		if s.Strategy == "" {
			s.Strategy = defaultStrategy
		}
	}
}

// Validate checks the configuration without modifying it.
func (c *Config) Validate() error {
	t := c.Table
	if t == nil {
		return errors.New("missing table block")
	}
	switch {
	case t.SmallBlind <= 0:
		return fmt.Errorf("small blind must be positive, got %d", t.SmallBlind)
	case t.BigBlind < t.SmallBlind:
		return fmt.Errorf("big blind %d is below small blind %d", t.BigBlind, t.SmallBlind)
	case t.ActionTimeoutMS < 0:
		return fmt.Errorf("action timeout must not be negative, got %d", t.ActionTimeoutMS)
	case len(c.Seats) < game.MinSeats || len(c.Seats) > game.MaxSeats:
		return fmt.Errorf("need %d-%d seats, got %d", game.MinSeats, game.MaxSeats, len(c.Seats))
	case t.Button < 0 || t.Button >= len(c.Seats):
		return fmt.Errorf("button %d out of range", t.Button)
	}

	seen := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if seen[s.ID] {
			return fmt.Errorf("seat %q declared twice", s.ID)
		}
		seen[s.ID] = true
		if s.Stack < 0 {
			return fmt.Errorf("seat %q: stack must not be negative", s.ID)
		}
		if !slices.Contains(bot.Strategies, s.Strategy) {
			return fmt.Errorf("seat %q: invalid strategy %q", s.ID, s.Strategy)
		}
	}
	return nil
}

// Engine returns the engine stakes.
func (c *Config) Engine() game.Config {
	return game.Config{
		SmallBlind:     c.Table.SmallBlind,
		BigBlind:       c.Table.BigBlind,
		Button:         c.Table.Button,
		BigBlindOption: c.Table.BigBlindOption,
	}
}

// SeatConfigs returns the seats in declaration order.
func (c *Config) SeatConfigs() []game.SeatConfig {
	out := make([]game.SeatConfig, len(c.Seats))
	for i, s := range c.Seats {
		out[i] = game.SeatConfig{ID: s.ID, Name: s.Name, Stack: s.Stack}
	}
	return out
}

// Timeout returns the per-decision timeout, zero when disabled.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Table.ActionTimeoutMS) * time.Millisecond
}

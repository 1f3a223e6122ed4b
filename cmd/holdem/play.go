package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/metrics"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/table"
)

// PlayCmd plays hands between the bots declared in a table file.
type PlayCmd struct {
	Config      string `short:"c" help:"Table configuration file (HCL)" default:"table.hcl" type:"path"`
	Hands       int    `short:"n" help:"Number of hands to play" default:"10"`
	Seed        int64  `help:"Shuffle seed (0 uses the config seed, then the clock)"`
	RecordDir   string `help:"Write each hand record as JSON into this directory" type:"path"`
	PHH         string `name:"phh" help:"Write the session as a PHH file" type:"path"`
	MetricsFile string `help:"Write Prometheus metrics to this textfile" type:"path"`
	Quiet       bool   `short:"q" help:"Only print the final stacks"`
}

func (cmd *PlayCmd) Run(logger *log.Logger) error {
	ctx, cancel := interruptContext(logger)
	defer cancel()
	return cmd.play(ctx, logger, os.Stdout)
}

func (cmd *PlayCmd) play(ctx context.Context, logger *log.Logger, out io.Writer) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", cmd.Hands)
	}
	seed := cmd.Seed
	if seed == 0 {
		seed = randutil.Seed(cfg.Table.Seed)
	}
	if cmd.RecordDir != "" {
		if err := fileutil.EnsureDir(cmd.RecordDir); err != nil {
			return err
		}
	}

	bus := game.NewEventBus()
	collector := metrics.NewCollector()
	bus.Subscribe(collector)

	engine, err := game.NewEngine(cfg.Engine(), cfg.SeatConfigs(),
		game.WithSeed(seed),
		game.WithLogger(logger.WithPrefix("engine")),
		game.WithEventBus(bus),
	)
	if err != nil {
		return err
	}

	agents := make(map[string]table.Agent, len(cfg.Seats))
	for i, s := range cfg.Seats {
		agent, err := bot.New(s.Strategy, randutil.New(seed+int64(i)+1), logger)
		if err != nil {
			return fmt.Errorf("seat %q: %w", s.ID, err)
		}
		agents[s.ID] = agent
	}
	tbl, err := table.New(engine, agents,
		table.WithLogger(logger),
		table.WithTimeout(cfg.Timeout()),
	)
	if err != nil {
		return err
	}

	if !cmd.Quiet {
		fmt.Fprintln(out, titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
		fmt.Fprintf(out, "%s %d\n\n", labelStyle.Render("seed"), seed)
	}

	var histories []*phh.HandHistory
	played := 0
	for played < cmd.Hands {
		_, err := tbl.PlayHand(ctx)
		if errors.Is(err, game.ErrNotEnoughPlayers) {
			logger.Info("table broken", "hands", played)
			break
		}
		rec := tbl.Record()
		if rec != nil && rec.Settlement != nil && (err == nil || rec.Abandoned) {
			played++
			if err := cmd.keep(rec, played, &histories, out); err != nil {
				return err
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted", "hands", played)
				break
			}
			return err
		}
	}

	if cmd.PHH != "" {
		if err := phh.WriteSessionFile(cmd.PHH, histories); err != nil {
			return err
		}
	}
	if cmd.MetricsFile != "" {
		if err := collector.WriteFile(cmd.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Stacks after %d hands", played)))
	button := engine.Dealer()
	for _, s := range tbl.Seats() {
		line := fmt.Sprintf("  %-10s %d", s.Name, s.Stack)
		if s.ID == button {
			line += " " + labelStyle.Render("(button)")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func (cmd *PlayCmd) keep(rec *game.HandRecord, n int, histories *[]*phh.HandHistory, out io.Writer) error {
	if !cmd.Quiet {
		fmt.Fprintln(out, renderHand(n, rec))
	}
	if cmd.RecordDir != "" {
		path := filepath.Join(cmd.RecordDir, rec.HandID+".json")
		if err := fileutil.WriteAtomic(path, 0o644, rec.WriteJSON); err != nil {
			return err
		}
	}
	if cmd.PHH != "" {
		h, err := phh.FromRecord(rec, filepath.Base(cmd.Config))
		if err != nil {
			return err
		}
		*histories = append(*histories, h)
	}
	return nil
}

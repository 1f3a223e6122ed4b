package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/metrics"
	"github.com/lox/holdem/internal/sim"
)

// SimulateCmd runs many seeded sessions and reports per-strategy results.
type SimulateCmd struct {
	Sessions    int      `help:"Number of sessions" default:"100"`
	Workers     int      `help:"Parallel workers (0 = GOMAXPROCS)" default:"0"`
	Hands       int      `help:"Hands per session" default:"200"`
	Seed        int64    `help:"Master seed (0 uses the clock)"`
	Strategies  []string `help:"Strategies to seat, one bot each" default:"call,random,aggressive,tight,chart" sep:","`
	Stack       int      `help:"Starting stack" default:"1000"`
	MetricsFile string   `help:"Write Prometheus metrics to this textfile" type:"path"`
}

func (cmd *SimulateCmd) Run(logger *log.Logger) error {
	ctx, cancel := interruptContext(logger)
	defer cancel()
	return cmd.simulate(ctx, logger, os.Stdout)
}

func (cmd *SimulateCmd) simulate(ctx context.Context, logger *log.Logger, out io.Writer) error {
	// Sessions publish from every worker.
	bus := game.NewEventBus()
	collector := metrics.NewCollector()
	bus.Subscribe(collector)

	start := time.Now()
	report, err := sim.Run(ctx, sim.Config{
		Sessions:   cmd.Sessions,
		Workers:    cmd.Workers,
		Hands:      cmd.Hands,
		Seed:       cmd.Seed,
		Strategies: cmd.Strategies,
		Stack:      cmd.Stack,
		Bus:        bus,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info("simulation complete", "hands", report.Hands, "elapsed", time.Since(start))

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf(" %d sessions, %d hands ", report.Sessions, report.Hands)))
	fmt.Fprintf(out, "%s %d\n\n", labelStyle.Render("seed"), report.Seed)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-12s %8s %10s %18s %8s %8s", "strategy", "hands", "net", "bb/100 (95% CI)", "sd wins", "big pots")))
	for _, name := range report.Strategies {
		s := report.Stats[name]
		low, high := s.ConfidenceInterval95()
		fmt.Fprintf(out, "%-12s %8d %10s %8.1f [%+.1f,%+.1f] %8d %8d\n",
			name, s.Hands, renderNet(s.NetChips), s.BB100(), low*100, high*100, s.ShowdownWins, s.BigPots)
	}

	if cmd.MetricsFile != "" {
		if err := collector.WriteFile(cmd.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

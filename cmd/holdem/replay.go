package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// ReplayCmd re-runs recorded hands from their seeds and checks every action
// and payout matches.
type ReplayCmd struct {
	Files []string `arg:"" name:"file" help:"Hand record JSON files" type:"existingfile"`
}

func (cmd *ReplayCmd) Run(logger *log.Logger) error {
	return cmd.replay(logger, os.Stdout)
}

func (cmd *ReplayCmd) replay(logger *log.Logger, out io.Writer) error {
	var failed int
	for _, path := range cmd.Files {
		if err := replayFile(path, logger, out); err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", lossStyle.Render("FAIL"), path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hands failed to replay", failed, len(cmd.Files))
	}
	return nil
}

func replayFile(path string, logger *log.Logger, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := game.ReadRecord(f)
	if err != nil {
		return err
	}
	st, err := game.Replay(rec, game.WithLogger(logger.WithPrefix("replay")))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s pot %d winners %v\n", winStyle.Render("OK"), rec.HandID, st.Total(), st.Winners())
	return nil
}

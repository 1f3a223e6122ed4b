package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/poker"
)

// EvalCmd evaluates a hand given as card arguments, e.g. "As Ks Qs Js Ts".
type EvalCmd struct {
	Cards []string `arg:"" name:"cards" help:"Five to seven cards"`
}

func (cmd *EvalCmd) Run(logger *log.Logger) error {
	return cmd.eval(os.Stdout)
}

func (cmd *EvalCmd) eval(out io.Writer) error {
	cards, err := poker.ParseCards(strings.Join(cmd.Cards, " "))
	if err != nil {
		return err
	}
	best, value, err := poker.BestFive(cards)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, headerStyle.Render(value.String()))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("best"), renderCards(best))
	return nil
}

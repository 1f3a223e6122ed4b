package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	redSuit     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func renderCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return labelStyle.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		s := c.String()
		if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
			s = redSuit.Render(s)
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

func renderNet(net int) string {
	switch {
	case net > 0:
		return winStyle.Render(fmt.Sprintf("+%d", net))
	case net < 0:
		return lossStyle.Render(fmt.Sprintf("%d", net))
	default:
		return labelStyle.Render("0")
	}
}

// renderHand prints a one-hand summary: board, showdown hands and results.
func renderHand(n int, rec *game.HandRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(fmt.Sprintf("Hand %d", n)), labelStyle.Render(rec.HandID))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("board"), renderCards(rec.Board))
	if rec.Settlement == nil {
		return b.String()
	}
	for _, h := range rec.Settlement.Hands {
		fmt.Fprintf(&b, "  %-10s %s  %s\n", h.Seat, renderCards(h.Cards), h.Value)
	}
	net := rec.Net()
	for _, s := range rec.Seats {
		if s.Stack == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-10s %s\n", s.Name, renderNet(net[s.ID]))
	}
	return b.String()
}

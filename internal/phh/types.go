// Package phh converts hand records to the Poker Hand History (PHH) format.
package phh

import "time"

// Variant is the PHH code for No-Limit Texas Hold'em.
const Variant = "NT"

// HandHistory is one hand in PHH form. Players are ordered from the small
// blind, so p1 is the first seat after the button (the button itself when
// heads-up).
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitzero"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Seed              int64    `toml:"seed,omitzero"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitzero"`
	Month             int      `toml:"month,omitzero"`
	Year              int      `toml:"year,omitzero"`

	Timestamp time.Time `toml:"-"`
}

// setTime fills the date fields from t in UTC.
func (h *HandHistory) setTime(t time.Time) {
	h.Timestamp = t
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	h.Time = utc.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = utc.Day()
	h.Month = int(utc.Month())
	h.Year = utc.Year()
}

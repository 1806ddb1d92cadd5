// Package cricket holds the match and live-score model shared by the registry,
// the live-score store, the presenter and the scorecard compiler.
package cricket

import (
	"fmt"
	"strings"
	"time"
)

// Sport is the only sport this service keeps fixtures for.
const Sport = "cricket"

// Status is the fixture lifecycle flag.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

// Valid reports whether s is one of the lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusFinished:
		return true
	}
	return false
}

// Next returns the state that follows s. Finished has no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusUpcoming:
		return StatusLive, true
	case StatusLive:
		return StatusFinished, true
	}
	return "", false
}

// rank orders the lifecycle so callers can tell forward from backward moves.
func (s Status) rank() int {
	switch s {
	case StatusUpcoming:
		return 1
	case StatusLive:
		return 2
	case StatusFinished:
		return 3
	}
	return 0
}

// Before reports whether s comes strictly before other in the lifecycle.
func (s Status) Before(other Status) bool {
	return s.rank() < other.rank()
}

// FinishedSentinel is the exact current_status text scorer clients send when
// a match ends. It doubles as display text and as the trigger that finishes
// the fixture.
// TODO: replace with a typed display-status enum once scorer clients stop
// sending free text. Until then only "Finished" finishes a fixture.
const FinishedSentinel = "Finished"

// Default summary texts seeded into a fresh live score.
const (
	SummaryNotStarted = "Match hasn't started yet."
	SummaryTossSoon   = "Toss will happen soon."
	SummaryInProgress = "Match in progress."
)

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	TossBat  TossDecision = "Bat"
	TossBowl TossDecision = "Bowl"
)

// Valid reports whether d is Bat or Bowl.
func (d TossDecision) Valid() bool {
	return d == TossBat || d == TossBowl
}

// Fixture is a scheduled match, independent of live play state.
type Fixture struct {
	ID              int64     `json:"id"`
	TeamA           string    `json:"team_a_name"`
	TeamB           string    `json:"team_b_name"`
	TeamAPlayers    []string  `json:"team_a_players"`
	TeamBPlayers    []string  `json:"team_b_players"`
	OversPerInnings int       `json:"overs_per_innings"`
	StartTime       time.Time `json:"start_time"`
	Venue           string    `json:"venue"`
	Umpires         []string  `json:"umpires"`
	Status          Status    `json:"match_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Overs renders a legal-ball count as completed overs and balls into the
// current over: 17 balls is "2.5", never a decimal fraction.
func Overs(balls int) string {
	if balls < 0 {
		balls = 0
	}
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

// Score renders runs and wickets as "runs/wickets".
func Score(runs, wickets int) string {
	return fmt.Sprintf("%d/%d", runs, wickets)
}

// TeamABatsFirst applies the toss rule: team A bats first when it won the
// toss and chose to bat, or when team B won the toss and chose to bowl.
func TeamABatsFirst(teamA, teamB, tossWinner string, decision TossDecision) bool {
	return (tossWinner == teamA && decision == TossBat) ||
		(tossWinner == teamB && decision == TossBowl)
}

// IsFinishedDisplay reports whether a free-text display status reads as
// finished, ignoring case. Only the presenter uses this relaxed comparison.
func IsFinishedDisplay(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), string(StatusFinished))
}

// Package presenter derives the viewer-facing summary of a match from its
// fixture and live score. Everything here is pure.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// Placeholders shown when a player or figure cannot be resolved.
const (
	UnknownName   = "N/A"
	UnknownFigure = "-"
)

// PlayerLine is one on-field player as shown to viewers.
type PlayerLine struct {
	Name   string `json:"name"`
	Figure string `json:"figure"`
}

var placeholderLine = PlayerLine{Name: UnknownName, Figure: UnknownFigure}

// View is the presentation model polled by viewer clients.
type View struct {
	MatchID     int64      `json:"match_id"`
	TeamA       string     `json:"team_a"`
	TeamB       string     `json:"team_b"`
	TeamAScore  string     `json:"team_a_score"`
	TeamAOvers  string     `json:"team_a_overs"`
	TeamBScore  string     `json:"team_b_score"`
	TeamBOvers  string     `json:"team_b_overs"`
	BattingTeam *string    `json:"batting_team"`
	BowlingTeam *string    `json:"bowling_team"`
	Striker     PlayerLine `json:"striker"`
	NonStriker  PlayerLine `json:"non_striker"`
	Bowler      PlayerLine `json:"bowler"`
	Innings     int        `json:"innings,omitempty"`
	Target      *int       `json:"target"`
	Toss        string     `json:"toss,omitempty"`
	Status      string     `json:"status"`
	BreakStatus string     `json:"break_status,omitempty"`
	Summary     string     `json:"summary"`
	Result      string     `json:"result,omitempty"`
	LastUpdated time.Time  `json:"last_updated"`
}

// ScoreLine formats one side's counters as ("runs/wickets", "(o.b)").
func ScoreLine(ts cricket.TeamScore) (score, overs string) {
	return cricket.Score(ts.Runs, ts.Wickets), "(" + cricket.Overs(ts.Balls) + ")"
}

// Present builds the view for a fixture and its materialised live score.
func Present(f cricket.Fixture, ls cricket.LiveScore) View {
	v := View{
		MatchID:     f.ID,
		TeamA:       f.TeamA,
		TeamB:       f.TeamB,
		Striker:     placeholderLine,
		NonStriker:  placeholderLine,
		Bowler:      placeholderLine,
		Target:      ls.Target,
		Toss:        tossLine(ls),
		Status:      ls.CurrentStatus,
		Summary:     displaySummary(ls),
		Result:      ls.Result,
		LastUpdated: ls.LastUpdated,
	}
	if ls.BreakStatus != nil {
		v.BreakStatus = *ls.BreakStatus
	}
	v.TeamAScore, v.TeamAOvers = ScoreLine(ls.Team(true))
	v.TeamBScore, v.TeamBOvers = ScoreLine(ls.Team(false))

	aBatting, ok := BattingSide(f, ls)
	if !ok {
		return v
	}

	batting, bowling := f.TeamB, f.TeamA
	if aBatting {
		batting, bowling = f.TeamA, f.TeamB
	}
	v.BattingTeam = &batting
	v.BowlingTeam = &bowling
	v.Innings = 2
	if *ls.IsFirstInnings {
		v.Innings = 1
	}

	v.Striker = batsmanLine(ls.BattingRoster(aBatting), ls.StrikerID)
	v.NonStriker = batsmanLine(ls.BattingRoster(aBatting), ls.NonStrikerID)
	v.Bowler = bowlerLine(ls.BowlingRoster(!aBatting), ls.BowlerID)
	return v
}

// BattingSide reports whether team A is batting right now. ok is false unless
// toss winner, toss decision and the innings flag are all present.
func BattingSide(f cricket.Fixture, ls cricket.LiveScore) (teamA bool, ok bool) {
	if ls.TossWinner == nil || ls.TossDecision == nil || ls.IsFirstInnings == nil {
		return false, false
	}
	aFirst := cricket.TeamABatsFirst(f.TeamA, f.TeamB, *ls.TossWinner, *ls.TossDecision)
	return *ls.IsFirstInnings == aFirst, true
}

func batsmanLine(roster []cricket.BattingEntry, id *int64) PlayerLine {
	if id == nil {
		return placeholderLine
	}
	for _, e := range roster {
		if e.PlayerID == *id {
			return PlayerLine{Name: e.Name, Figure: fmt.Sprintf("%d(%d)", e.Runs, e.Balls)}
		}
	}
	return unknownPlayer(*id)
}

func bowlerLine(roster []cricket.BowlingEntry, id *int64) PlayerLine {
	if id == nil {
		return placeholderLine
	}
	for _, e := range roster {
		if e.PlayerID == *id {
			return PlayerLine{
				Name:   e.Name,
				Figure: fmt.Sprintf("%d/%d (%s)", e.Wickets, e.Runs, cricket.Overs(e.Balls)),
			}
		}
	}
	return unknownPlayer(*id)
}

func unknownPlayer(id int64) PlayerLine {
	return PlayerLine{Name: fmt.Sprintf("P%d", id), Figure: UnknownFigure}
}

func displaySummary(ls cricket.LiveScore) string {
	if cricket.IsFinishedDisplay(ls.CurrentStatus) && ls.Result != "" {
		return ls.Result
	}
	if strings.TrimSpace(ls.Summary) == "" {
		return cricket.SummaryInProgress
	}
	return ls.Summary
}

func tossLine(ls cricket.LiveScore) string {
	if ls.TossWinner == nil || ls.TossDecision == nil || *ls.TossWinner == "" {
		return ""
	}
	choice := "bat"
	if *ls.TossDecision == cricket.TossBowl {
		choice = "bowl"
	}
	return fmt.Sprintf("%s won the toss and elected to %s", *ls.TossWinner, choice)
}

// Package scorecard compiles a match's live score into innings-ordered data
// for a printable scorecard. Page layout belongs to a Renderer.
package scorecard

import (
	"strings"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// Innings is one team's batting turn as it appears on the scorecard.
type Innings struct {
	Number      int                    `json:"number"`
	BattingTeam string                 `json:"batting_team"`
	BowlingTeam string                 `json:"bowling_team"`
	Batting     []cricket.BattingEntry `json:"batting"`
	Bowling     []cricket.BowlingEntry `json:"bowling"`
	Extras      int                    `json:"extras"`
	Total       string                 `json:"total"`
	Overs       string                 `json:"overs"`
	Timeline    string                 `json:"timeline"`
}

// Scorecard is the handoff to the rendering collaborator.
type Scorecard struct {
	MatchID int64      `json:"match_id"`
	TeamA   string     `json:"team_a"`
	TeamB   string     `json:"team_b"`
	Venue   string     `json:"venue"`
	Toss    string     `json:"toss,omitempty"`
	Status  string     `json:"status"`
	Result  string     `json:"result,omitempty"`
	Target  *int       `json:"target,omitempty"`
	Innings [2]Innings `json:"innings"`
}

// Compile partitions the live score into first and second innings.
func Compile(f cricket.Fixture, ls cricket.LiveScore) Scorecard {
	aFirst := teamABattedFirst(f, ls)

	sc := Scorecard{
		MatchID: f.ID,
		TeamA:   f.TeamA,
		TeamB:   f.TeamB,
		Venue:   f.Venue,
		Status:  ls.CurrentStatus,
		Result:  ls.Result,
		Target:  ls.Target,
	}
	if ls.TossWinner != nil && ls.TossDecision != nil {
		sc.Toss = *ls.TossWinner + " elected to " + strings.ToLower(string(*ls.TossDecision))
	}

	sc.Innings[0] = buildInnings(1, f, ls, aFirst, keepFirstInningsBatsman)
	sc.Innings[1] = buildInnings(2, f, ls, !aFirst, keepSecondInningsBatsman)
	return sc
}

// teamABattedFirst applies the presenter's toss rule. Only an unset toss
// defaults to team A.
func teamABattedFirst(f cricket.Fixture, ls cricket.LiveScore) bool {
	if ls.TossWinner == nil || ls.TossDecision == nil {
		return true
	}
	return cricket.TeamABatsFirst(f.TeamA, f.TeamB, *ls.TossWinner, *ls.TossDecision)
}

func buildInnings(n int, f cricket.Fixture, ls cricket.LiveScore, teamA bool, keep func(cricket.BattingEntry) bool) Innings {
	batting, bowling := f.TeamB, f.TeamA
	if teamA {
		batting, bowling = f.TeamA, f.TeamB
	}
	ts := ls.Team(teamA)
	return Innings{
		Number:      n,
		BattingTeam: batting,
		BowlingTeam: bowling,
		Batting:     filterBatting(ls.BattingRoster(teamA), keep),
		Bowling:     filterBowling(ls.BowlingRoster(!teamA)),
		Extras:      ts.Extras,
		Total:       cricket.Score(ts.Runs, ts.Wickets),
		Overs:       cricket.Overs(ts.Balls),
		Timeline:    strings.Join(ls.Timeline(teamA), ", "),
	}
}

// The two innings filter batsmen differently. The first innings also hides
// 0-ball "Not Out" entries; the second only hides "Yet to bat".
// TODO: confirm with scorers whether the second innings should hide 0-ball
// "Not Out" entries too before unifying these.
func keepFirstInningsBatsman(e cricket.BattingEntry) bool {
	if e.Balls != 0 {
		return true
	}
	return e.Status != cricket.BatStatusYetToBat && e.Status != cricket.BatStatusNotOut
}

func keepSecondInningsBatsman(e cricket.BattingEntry) bool {
	return e.Balls != 0 || e.Status != cricket.BatStatusYetToBat
}

func filterBatting(in []cricket.BattingEntry, keep func(cricket.BattingEntry) bool) []cricket.BattingEntry {
	out := make([]cricket.BattingEntry, 0, len(in))
	for _, e := range in {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func filterBowling(in []cricket.BowlingEntry) []cricket.BowlingEntry {
	out := make([]cricket.BowlingEntry, 0, len(in))
	for _, e := range in {
		if e.Balls > 0 {
			out = append(out, e)
		}
	}
	return out
}

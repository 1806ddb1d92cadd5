package cricket

import "time"

// BattingEntry is one batsman's line in a team's batting roster.
type BattingEntry struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Runs     int    `json:"runs"`
	Balls    int    `json:"balls"`
	Status   string `json:"status"`
}

// BowlingEntry is one bowler's line in a team's bowling roster.
type BowlingEntry struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Balls    int    `json:"balls"`
	Runs     int    `json:"runs"`
	Wickets  int    `json:"wickets"`
}

// Batting status texts the scorecard filters on.
const (
	BatStatusYetToBat = "Yet to bat"
	BatStatusNotOut   = "Not Out"
)

// TeamScore is one side's running counters. Team 1 is always team A.
type TeamScore struct {
	Runs    int
	Wickets int
	Balls   int
	Extras  int
}

// LiveScore is the per-fixture mutable aggregate. The scorer client submits
// the whole thing on every update; the store only stamps LastUpdated.
type LiveScore struct {
	MatchID int64 `json:"match_id"`

	TossWinner   *string       `json:"toss_winner"`
	TossDecision *TossDecision `json:"toss_decision"`

	CurrentStatus string  `json:"current_status"`
	BreakStatus   *string `json:"break_status"`

	Team1Score   int `json:"team1_score"`
	Team1Wickets int `json:"team1_wickets"`
	Team1Balls   int `json:"team1_balls"`
	Team1Extras  int `json:"team1_extras"`
	Team2Score   int `json:"team2_score"`
	Team2Wickets int `json:"team2_wickets"`
	Team2Balls   int `json:"team2_balls"`
	Team2Extras  int `json:"team2_extras"`

	StrikerID    *int64 `json:"striker_id"`
	NonStrikerID *int64 `json:"non_striker_id"`
	BowlerID     *int64 `json:"bowler_id"`

	IsFirstInnings    *bool `json:"is_first_innings"`
	Target            *int  `json:"target"`
	FirstInningsBalls *int  `json:"first_innings_balls"`

	Team1Batting []BattingEntry `json:"team1_batting"`
	Team1Bowling []BowlingEntry `json:"team1_bowling"`
	Team2Batting []BattingEntry `json:"team2_batting"`
	Team2Bowling []BowlingEntry `json:"team2_bowling"`

	Team1Timeline []string `json:"team1_timeline"`
	Team2Timeline []string `json:"team2_timeline"`

	Summary string `json:"summary"`
	Result  string `json:"result"`

	LastUpdated time.Time `json:"last_updated"`
}

// DefaultLiveScore is the state materialised for a fixture that has none yet.
// It mirrors the fixture lifecycle for display.
func DefaultLiveScore(f Fixture) LiveScore {
	ls := LiveScore{
		MatchID:       f.ID,
		CurrentStatus: string(StatusUpcoming),
		Summary:       SummaryNotStarted,
	}
	if f.Status == StatusLive {
		ls.CurrentStatus = string(StatusLive)
		ls.Summary = SummaryTossSoon
	}
	ls.Normalize()
	return ls
}

// Normalize replaces nil rosters and timelines with empty slices so that the
// stored and served shapes never carry null lists.
func (ls *LiveScore) Normalize() {
	if ls.Team1Batting == nil {
		ls.Team1Batting = []BattingEntry{}
	}
	if ls.Team2Batting == nil {
		ls.Team2Batting = []BattingEntry{}
	}
	if ls.Team1Bowling == nil {
		ls.Team1Bowling = []BowlingEntry{}
	}
	if ls.Team2Bowling == nil {
		ls.Team2Bowling = []BowlingEntry{}
	}
	if ls.Team1Timeline == nil {
		ls.Team1Timeline = []string{}
	}
	if ls.Team2Timeline == nil {
		ls.Team2Timeline = []string{}
	}
}

// Team returns the counters for team 1 (A) or team 2 (B).
func (ls *LiveScore) Team(teamA bool) TeamScore {
	if teamA {
		return TeamScore{Runs: ls.Team1Score, Wickets: ls.Team1Wickets, Balls: ls.Team1Balls, Extras: ls.Team1Extras}
	}
	return TeamScore{Runs: ls.Team2Score, Wickets: ls.Team2Wickets, Balls: ls.Team2Balls, Extras: ls.Team2Extras}
}

// BattingRoster returns team A's or team B's batting roster.
func (ls *LiveScore) BattingRoster(teamA bool) []BattingEntry {
	if teamA {
		return ls.Team1Batting
	}
	return ls.Team2Batting
}

// BowlingRoster returns team A's or team B's bowling roster.
func (ls *LiveScore) BowlingRoster(teamA bool) []BowlingEntry {
	if teamA {
		return ls.Team1Bowling
	}
	return ls.Team2Bowling
}

// Timeline returns team A's or team B's innings timeline.
func (ls *LiveScore) Timeline(teamA bool) []string {
	if teamA {
		return ls.Team1Timeline
	}
	return ls.Team2Timeline
}

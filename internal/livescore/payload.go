package livescore

import (
	"strings"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// Payload is a full live-score submission. Absent fields reset the stored
// value; nothing is carried over from the previous state.
type Payload struct {
	TossWinner   *string `json:"toss_winner"`
	TossDecision *string `json:"toss_decision"`

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

	Team1Batting []cricket.BattingEntry `json:"team1_batting"`
	Team1Bowling []cricket.BowlingEntry `json:"team1_bowling"`
	Team2Batting []cricket.BattingEntry `json:"team2_batting"`
	Team2Bowling []cricket.BowlingEntry `json:"team2_bowling"`

	Team1Timeline []string `json:"team1_timeline"`
	Team2Timeline []string `json:"team2_timeline"`

	Summary string `json:"summary"`
	Result  string `json:"result"`
}

// LiveScore validates p and converts it into the stored aggregate for match
// id. An empty toss winner or decision means no toss yet.
func (p Payload) LiveScore(id int64) (cricket.LiveScore, error) {
	ls := cricket.LiveScore{
		MatchID:           id,
		TossWinner:        blankToNil(p.TossWinner),
		CurrentStatus:     p.CurrentStatus,
		BreakStatus:       p.BreakStatus,
		Team1Score:        p.Team1Score,
		Team1Wickets:      p.Team1Wickets,
		Team1Balls:        p.Team1Balls,
		Team1Extras:       p.Team1Extras,
		Team2Score:        p.Team2Score,
		Team2Wickets:      p.Team2Wickets,
		Team2Balls:        p.Team2Balls,
		Team2Extras:       p.Team2Extras,
		StrikerID:         p.StrikerID,
		NonStrikerID:      p.NonStrikerID,
		BowlerID:          p.BowlerID,
		IsFirstInnings:    p.IsFirstInnings,
		Target:            p.Target,
		FirstInningsBalls: p.FirstInningsBalls,
		Team1Batting:      p.Team1Batting,
		Team1Bowling:      p.Team1Bowling,
		Team2Batting:      p.Team2Batting,
		Team2Bowling:      p.Team2Bowling,
		Team1Timeline:     p.Team1Timeline,
		Team2Timeline:     p.Team2Timeline,
		Summary:           p.Summary,
		Result:            p.Result,
	}

	if d := blankToNil(p.TossDecision); d != nil {
		decision := cricket.TossDecision(*d)
		if !decision.Valid() {
			return cricket.LiveScore{}, cricket.ConstraintViolationError(
				"toss_decision must be %q or %q, got %q", cricket.TossBat, cricket.TossBowl, *d)
		}
		ls.TossDecision = &decision
	}

	if err := checkCounters(ls); err != nil {
		return cricket.LiveScore{}, err
	}
	ls.Normalize()
	return ls, nil
}

func checkCounters(ls cricket.LiveScore) error {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"team1_score", ls.Team1Score},
		{"team1_wickets", ls.Team1Wickets},
		{"team1_balls", ls.Team1Balls},
		{"team1_extras", ls.Team1Extras},
		{"team2_score", ls.Team2Score},
		{"team2_wickets", ls.Team2Wickets},
		{"team2_balls", ls.Team2Balls},
		{"team2_extras", ls.Team2Extras},
		{"target", deref(ls.Target)},
		{"first_innings_balls", deref(ls.FirstInningsBalls)},
	} {
		if c.value < 0 {
			return cricket.ValidationError("%s must not be negative, got %d", c.name, c.value)
		}
	}

	for team, roster := range map[string][]cricket.BattingEntry{"team1_batting": ls.Team1Batting, "team2_batting": ls.Team2Batting} {
		for _, e := range roster {
			if e.Runs < 0 || e.Balls < 0 {
				return cricket.ValidationError("%s: player %d has negative figures", team, e.PlayerID)
			}
		}
	}
	for team, roster := range map[string][]cricket.BowlingEntry{"team1_bowling": ls.Team1Bowling, "team2_bowling": ls.Team2Bowling} {
		for _, e := range roster {
			if e.Runs < 0 || e.Balls < 0 || e.Wickets < 0 {
				return cricket.ValidationError("%s: player %d has negative figures", team, e.PlayerID)
			}
		}
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

package scorecard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/presenter"
)

func ptr[T any](v T) *T { return &v }

func fixture() cricket.Fixture {
	return cricket.Fixture{ID: 3, TeamA: "Lions", TeamB: "Tigers", Venue: "Eden Park", Status: cricket.StatusFinished}
}

func finishedScore() cricket.LiveScore {
	return cricket.LiveScore{
		MatchID:       3,
		CurrentStatus: "Finished",
		Result:        "Lions won by 4 runs",
		Team1Score:    150, Team1Wickets: 6, Team1Balls: 120, Team1Extras: 9,
		Team2Score: 146, Team2Wickets: 8, Team2Balls: 120, Team2Extras: 5,
		Team1Batting: []cricket.BattingEntry{
			{PlayerID: 1, Name: "Rao", Runs: 70, Balls: 50, Status: "c Khan b Ali"},
			{PlayerID: 2, Name: "Das", Runs: 0, Balls: 0, Status: "Not Out"},
			{PlayerID: 3, Name: "Sen", Runs: 0, Balls: 0, Status: "Yet to bat"},
			{PlayerID: 4, Name: "Roy", Runs: 20, Balls: 15, Status: "Not Out"},
		},
		Team2Batting: []cricket.BattingEntry{
			{PlayerID: 11, Name: "Khan", Runs: 60, Balls: 44, Status: "b Roy"},
			{PlayerID: 12, Name: "Ali", Runs: 0, Balls: 0, Status: "Not Out"},
			{PlayerID: 13, Name: "Iqbal", Runs: 0, Balls: 0, Status: "Yet to bat"},
		},
		Team1Bowling: []cricket.BowlingEntry{
			{PlayerID: 4, Name: "Roy", Balls: 24, Runs: 30, Wickets: 3},
			{PlayerID: 5, Name: "Paul", Balls: 0, Runs: 0, Wickets: 0},
		},
		Team2Bowling: []cricket.BowlingEntry{
			{PlayerID: 12, Name: "Ali", Balls: 24, Runs: 28, Wickets: 2},
		},
		Team1Timeline: []string{"1", "4", "W"},
		Team2Timeline: []string{"0", "6"},
	}
}

func TestCompileTeamBWinsAndBowlsMeansTeamABatsFirst(t *testing.T) {
	ls := finishedScore()
	ls.TossWinner = ptr("Tigers")
	ls.TossDecision = ptr(cricket.TossBowl)

	sc := Compile(fixture(), ls)
	first := sc.Innings[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "Lions", first.BattingTeam)
	assert.Equal(t, "Tigers", first.BowlingTeam)
	assert.Equal(t, "150/6", first.Total)
	assert.Equal(t, "20.0", first.Overs)
	assert.Equal(t, 9, first.Extras)
	assert.Equal(t, "1, 4, W", first.Timeline)

	names := make([]string, 0, len(first.Batting))
	for _, e := range first.Batting {
		names = append(names, e.Name)
	}
	// Innings one hides 0-ball "Not Out" and "Yet to bat" entries.
	assert.Equal(t, []string{"Rao", "Roy"}, names)
	require.Len(t, first.Bowling, 1)
	assert.Equal(t, "Ali", first.Bowling[0].Name)
}

func TestCompileSecondInningsKeepsZeroBallNotOut(t *testing.T) {
	ls := finishedScore()
	ls.TossWinner = ptr("Tigers")
	ls.TossDecision = ptr(cricket.TossBowl)

	second := Compile(fixture(), ls).Innings[1]
	assert.Equal(t, "Tigers", second.BattingTeam)
	assert.Equal(t, "146/8", second.Total)
	assert.Equal(t, "0, 6", second.Timeline)

	names := make([]string, 0, len(second.Batting))
	for _, e := range second.Batting {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Khan", "Ali"}, names)
	// Zero-ball bowlers are dropped.
	require.Len(t, second.Bowling, 1)
	assert.Equal(t, "Roy", second.Bowling[0].Name)
}

func TestCompileTeamBBatsFirst(t *testing.T) {
	ls := finishedScore()
	ls.TossWinner = ptr("Lions")
	ls.TossDecision = ptr(cricket.TossBowl)

	sc := Compile(fixture(), ls)
	assert.Equal(t, "Tigers", sc.Innings[0].BattingTeam)
	assert.Equal(t, "146/8", sc.Innings[0].Total)
	assert.Equal(t, "Lions", sc.Innings[1].BattingTeam)
	assert.Equal(t, "Lions elected to bowl", sc.Toss)
}

func TestCompileWithoutTossDefaultsToTeamA(t *testing.T) {
	sc := Compile(fixture(), finishedScore())
	assert.Equal(t, "Lions", sc.Innings[0].BattingTeam)
	assert.Empty(t, sc.Toss)
}

func TestCompileAgreesWithPresenterOnFirstInningsBatting(t *testing.T) {
	cases := []struct {
		winner   string
		decision cricket.TossDecision
	}{
		{"Lions", cricket.TossBat},
		{"Lions", cricket.TossBowl},
		{"Tigers", cricket.TossBat},
		{"Tigers", cricket.TossBowl},
		{"lions", cricket.TossBat},
		{"Panthers", cricket.TossBowl},
	}
	for _, tc := range cases {
		t.Run(tc.winner+"/"+string(tc.decision), func(t *testing.T) {
			ls := finishedScore()
			ls.TossWinner = ptr(tc.winner)
			ls.TossDecision = ptr(tc.decision)
			ls.IsFirstInnings = ptr(true)

			view := presenter.Present(fixture(), ls)
			sc := Compile(fixture(), ls)

			require.NotNil(t, view.BattingTeam)
			assert.Equal(t, *view.BattingTeam, sc.Innings[0].BattingTeam)
		})
	}
}

func TestCompileTossWinnerNamingNeitherTeamPutsTeamBFirst(t *testing.T) {
	ls := finishedScore()
	ls.TossWinner = ptr("lions")
	ls.TossDecision = ptr(cricket.TossBat)

	sc := Compile(fixture(), ls)
	assert.Equal(t, "Tigers", sc.Innings[0].BattingTeam)
	assert.Equal(t, "Lions", sc.Innings[1].BattingTeam)
}

func TestCompileEmptyRostersYieldEmptyLists(t *testing.T) {
	sc := Compile(fixture(), cricket.LiveScore{MatchID: 3})
	assert.NotNil(t, sc.Innings[0].Batting)
	assert.Empty(t, sc.Innings[0].Batting)
	assert.Equal(t, "0/0", sc.Innings[1].Total)
	assert.Equal(t, "", sc.Innings[1].Timeline)
}

func TestHTMLRendererRendersBothInnings(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	assert.Contains(t, r.ContentType(), "text/html")

	ls := finishedScore()
	ls.TossWinner = ptr("Tigers")
	ls.TossDecision = ptr(cricket.TossBowl)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Compile(fixture(), ls)))
	out := buf.String()
	assert.Contains(t, out, "Lions vs Tigers")
	assert.Contains(t, out, "Innings 1: Lions")
	assert.Contains(t, out, "Innings 2: Tigers")
	assert.Contains(t, out, "Lions won by 4 runs")
	assert.Contains(t, out, "Eden Park")
	assert.Contains(t, out, "<td class=\"num\">4.0</td>")
}

package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/db"
)

// openPostgres migrates and connects to TEST_DATABASE_URL, skipping the test
// when it is unset. Fixtures created through the returned seed func are
// deleted on cleanup; live scores go with them through the cascade.
func openPostgres(t *testing.T) (*Postgres, func(cricket.Fixture) int64) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, url))

	cfg := &config.Config{
		StorageDriver:    config.DriverPostgres,
		DatabaseURL:      url,
		DBPoolMinConns:   1,
		DBPoolMaxConns:   8,
		DBPoolMaxLife:    time.Minute,
		DBConnectTimeout: 5 * time.Second,
	}
	backend, err := Open(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	pg := backend.(*Postgres)

	var ids []int64
	t.Cleanup(func() {
		pg.Close()
		if len(ids) == 0 {
			return
		}
		conn, err := pgx.Connect(context.Background(), url)
		if err != nil {
			t.Logf("cleanup connect: %v", err)
			return
		}
		defer conn.Close(context.Background())
		if _, err := conn.Exec(context.Background(),
			"DELETE FROM cricket_match WHERE match_id = ANY($1)", ids); err != nil {
			t.Logf("cleanup delete: %v", err)
		}
	})

	seed := func(f cricket.Fixture) int64 {
		t.Helper()
		id, err := pg.InsertFixture(ctx, f)
		require.NoError(t, err)
		ids = append(ids, id)
		return id
	}
	return pg, seed
}

func pgFixture(start time.Time) cricket.Fixture {
	return cricket.Fixture{
		TeamA: "Lions", TeamB: "Tigers", OversPerInnings: 20,
		StartTime: start, Venue: "Oval",
		TeamAPlayers: []string{"a1", "a2"}, TeamBPlayers: []string{"b1"},
	}
}

func TestPostgres_FixtureRoundTrip(t *testing.T) {
	pg, seed := openPostgres(t)
	ctx := context.Background()
	start := time.Date(2031, 5, 1, 14, 30, 0, 0, time.UTC)

	id := seed(pgFixture(start))
	f, err := pg.GetFixture(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lions", f.TeamA)
	assert.Equal(t, []string{"a1", "a2"}, f.TeamAPlayers)
	assert.Equal(t, []string{}, f.Umpires)
	assert.True(t, start.Equal(f.StartTime))
	assert.Equal(t, cricket.StatusUpcoming, f.Status)

	_, err = pg.GetFixture(ctx, id+1_000_000)
	assert.True(t, cricket.IsNotFound(err))
}

func TestPostgres_ConditionalTransition(t *testing.T) {
	pg, seed := openPostgres(t)
	ctx := context.Background()
	id := seed(pgFixture(time.Now().Add(time.Hour)))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := pg.TransitionFixture(ctx, id, cricket.StatusUpcoming, cricket.StatusLive)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	ok, err := pg.TransitionFixture(ctx, id, cricket.StatusUpcoming, cricket.StatusLive)
	require.NoError(t, err)
	assert.False(t, ok, "guard must reject a stale from-state")

	f, err := pg.GetFixture(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cricket.StatusLive, f.Status)
}

func TestPostgres_DoubleSeedIsNotAnError(t *testing.T) {
	pg, seed := openPostgres(t)
	ctx := context.Background()
	f := pgFixture(time.Now().Add(time.Hour))
	f.ID = seed(f)

	first := cricket.DefaultLiveScore(f)
	inserted, err := pg.InsertLiveScore(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	second := cricket.DefaultLiveScore(f)
	second.Summary = "should not land"
	inserted, err = pg.InsertLiveScore(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := pg.GetLiveScore(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Summary, got.Summary)

	_, err = pg.InsertLiveScore(ctx, cricket.LiveScore{MatchID: f.ID + 1_000_000})
	assert.True(t, cricket.IsNotFound(err), "missing fixture maps to NotFound, got %v", err)
}

func TestPostgres_UpsertRoundTripAndStamp(t *testing.T) {
	pg, seed := openPostgres(t)
	ctx := context.Background()
	id := seed(pgFixture(time.Now().Add(-time.Hour)))

	bat := cricket.TossBat
	in := cricket.LiveScore{
		MatchID:        id,
		TossWinner:     ptrTo("Lions"),
		TossDecision:   &bat,
		CurrentStatus:  "live",
		Team1Score:     87,
		Team1Wickets:   3,
		Team1Balls:     61,
		Team1Extras:    4,
		StrikerID:      ptrTo(int64(1)),
		IsFirstInnings: ptrTo(true),
		Team1Batting: []cricket.BattingEntry{
			{PlayerID: 1, Name: "Rao", Runs: 40, Balls: 30, Status: "Not Out"},
		},
		Team2Bowling: []cricket.BowlingEntry{
			{PlayerID: 9, Name: "Ali", Balls: 24, Runs: 20, Wickets: 2},
		},
		Team1Timeline: []string{"1", "W", "4"},
		Summary:       "Lions 87/3",
	}

	firstStamp, err := pg.UpsertLiveScore(ctx, in)
	require.NoError(t, err)

	got, err := pg.GetLiveScore(ctx, id)
	require.NoError(t, err)
	assert.True(t, firstStamp.Equal(got.LastUpdated))

	want := in
	want.Normalize()
	want.LastUpdated = got.LastUpdated
	assert.Equal(t, want, got)

	// Full replace: fields absent from the second write are cleared.
	next := cricket.LiveScore{MatchID: id, CurrentStatus: "Innings Break", Team1Score: 90}
	secondStamp, err := pg.UpsertLiveScore(ctx, next)
	require.NoError(t, err)
	assert.True(t, secondStamp.After(firstStamp))

	got, err = pg.GetLiveScore(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.TossWinner)
	assert.Nil(t, got.StrikerID)
	assert.Empty(t, got.Team1Batting)
	assert.Equal(t, 90, got.Team1Score)

	rows, err := pg.ListFixtures(ctx, cricket.ListQuery{Status: cricket.StatusUpcoming, Descending: true})
	require.NoError(t, err)
	var joined *cricket.LiveScore
	for _, r := range rows {
		if r.Fixture.ID == id {
			joined = r.Live
		}
	}
	require.NotNil(t, joined, "list must join the live score")
	assert.Equal(t, "Innings Break", joined.CurrentStatus)
}

func TestPostgres_BadTossDecisionIsConstraintViolation(t *testing.T) {
	pg, seed := openPostgres(t)
	ctx := context.Background()
	id := seed(pgFixture(time.Now()))

	sideways := cricket.TossDecision("Sideways")
	_, err := pg.UpsertLiveScore(ctx, cricket.LiveScore{MatchID: id, TossDecision: &sideways})
	assert.Equal(t, cricket.KindConstraintViolation, cricket.KindOf(err))

	_, err = pg.GetLiveScore(ctx, id)
	assert.True(t, cricket.IsNotFound(err), "rejected upsert must not write")
}

func ptrTo[T any](v T) *T { return &v }

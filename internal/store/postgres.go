// Package store implements the storage collaborator behind the match registry
// and the live-score service: a Postgres backend on pgx and an in-process
// backend with the same guarantees.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// Querier is the subset of pgxpool.Pool the Postgres store uses. Statement
// names refer to the prepared statements registered by the db package.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres persists fixtures and live scores in cricket_match and
// cricket_live_score.
type Postgres struct {
	q     Querier
	ping  func(context.Context) error
	close func()
}

// NewPostgres wraps a pool. ping backs the readiness probe and may be nil.
func NewPostgres(q Querier, ping func(context.Context) error) *Postgres {
	return &Postgres{q: q, ping: ping}
}

// Close releases the underlying pool when the store owns one.
func (p *Postgres) Close() {
	if p.close != nil {
		p.close()
	}
}

// Ping checks database reachability.
func (p *Postgres) Ping(ctx context.Context) error {
	if p.ping == nil {
		return nil
	}
	if err := p.ping(ctx); err != nil {
		return cricket.StorageUnavailableError("ping database", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Fixtures
// --------------------------------------------------------------------------

func (p *Postgres) InsertFixture(ctx context.Context, f cricket.Fixture) (int64, error) {
	var id int64
	err := p.q.QueryRow(ctx, "fixture_insert",
		f.TeamA, f.TeamB, nonNil(f.TeamAPlayers), nonNil(f.TeamBPlayers),
		f.OversPerInnings, f.StartTime, f.Venue, nonNil(f.Umpires),
	).Scan(&id)
	if err != nil {
		return 0, mapError("insert fixture", err)
	}
	return id, nil
}

func (p *Postgres) GetFixture(ctx context.Context, id int64) (cricket.Fixture, error) {
	var f cricket.Fixture
	var status string
	err := p.q.QueryRow(ctx, "fixture_by_id", id).Scan(
		&f.ID, &f.TeamA, &f.TeamB, &f.TeamAPlayers, &f.TeamBPlayers,
		&f.OversPerInnings, &f.StartTime, &f.Venue, &f.Umpires, &status, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return cricket.Fixture{}, cricket.NotFoundError("match", id)
	}
	if err != nil {
		return cricket.Fixture{}, mapError("get fixture", err)
	}
	f.Status = cricket.Status(status)
	return f, nil
}

func (p *Postgres) ListFixtures(ctx context.Context, q cricket.ListQuery) ([]cricket.FixtureScore, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case q.StartsAfter != nil:
		rows, err = p.q.Query(ctx, "fixtures_after", string(q.Status), *q.StartsAfter)
	case q.Descending:
		rows, err = p.q.Query(ctx, "fixtures_desc", string(q.Status))
	default:
		rows, err = p.q.Query(ctx, "fixtures_asc", string(q.Status))
	}
	if err != nil {
		return nil, mapError("list fixtures", err)
	}
	defer rows.Close()

	result := make([]cricket.FixtureScore, 0)
	for rows.Next() {
		var f cricket.Fixture
		var status string
		var lr liveRow
		dest := append([]any{
			&f.ID, &f.TeamA, &f.TeamB, &f.TeamAPlayers, &f.TeamBPlayers,
			&f.OversPerInnings, &f.StartTime, &f.Venue, &f.Umpires, &status, &f.CreatedAt,
		}, lr.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, mapError("scan fixture", err)
		}
		f.Status = cricket.Status(status)

		entry := cricket.FixtureScore{Fixture: f}
		if lr.MatchID != nil {
			ls, err := lr.liveScore()
			if err != nil {
				return nil, err
			}
			entry.Live = &ls
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list fixtures", err)
	}
	return result, nil
}

func (p *Postgres) TransitionFixture(ctx context.Context, id int64, from, to cricket.Status) (bool, error) {
	tag, err := p.q.Exec(ctx, "fixture_transition", id, string(from), string(to))
	if err != nil {
		return false, mapError("transition fixture", err)
	}
	return tag.RowsAffected() == 1, nil
}

// --------------------------------------------------------------------------
// Live scores
// --------------------------------------------------------------------------

func (p *Postgres) GetLiveScore(ctx context.Context, id int64) (cricket.LiveScore, error) {
	var lr liveRow
	err := p.q.QueryRow(ctx, "live_score_by_id", id).Scan(lr.dest()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return cricket.LiveScore{}, cricket.NotFoundError("live score", id)
	}
	if err != nil {
		return cricket.LiveScore{}, mapError("get live score", err)
	}
	return lr.liveScore()
}

func (p *Postgres) InsertLiveScore(ctx context.Context, ls cricket.LiveScore) (bool, error) {
	args, err := liveScoreArgs(ls)
	if err != nil {
		return false, err
	}
	tag, err := p.q.Exec(ctx, "live_score_insert", args...)
	if err != nil {
		return false, mapError("insert live score", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *Postgres) UpsertLiveScore(ctx context.Context, ls cricket.LiveScore) (time.Time, error) {
	args, err := liveScoreArgs(ls)
	if err != nil {
		return time.Time{}, err
	}
	var stamped time.Time
	if err := p.q.QueryRow(ctx, "live_score_upsert", args...).Scan(&stamped); err != nil {
		return time.Time{}, mapError("upsert live score", err)
	}
	return stamped, nil
}

func (p *Postgres) SetLiveStatus(ctx context.Context, id int64, status string) error {
	tag, err := p.q.Exec(ctx, "live_score_set_status", id, status)
	if err != nil {
		return mapError("set live status", err)
	}
	if tag.RowsAffected() == 0 {
		return cricket.NotFoundError("live score", id)
	}
	return nil
}

// liveScoreArgs binds a live score in the column order of the insert and
// upsert statements.
func liveScoreArgs(ls cricket.LiveScore) ([]any, error) {
	ls.Normalize()
	blobs := make([][]byte, 0, 6)
	for _, v := range []any{
		ls.Team1Batting, ls.Team1Bowling, ls.Team2Batting, ls.Team2Bowling,
		ls.Team1Timeline, ls.Team2Timeline,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, cricket.ValidationError("encode live score: %v", err)
		}
		blobs = append(blobs, b)
	}

	var decision *string
	if ls.TossDecision != nil {
		d := string(*ls.TossDecision)
		decision = &d
	}

	return []any{
		ls.MatchID, ls.TossWinner, decision, ls.CurrentStatus, ls.BreakStatus,
		ls.Team1Score, ls.Team1Wickets, ls.Team1Balls, ls.Team1Extras,
		ls.Team2Score, ls.Team2Wickets, ls.Team2Balls, ls.Team2Extras,
		ls.StrikerID, ls.NonStrikerID, ls.BowlerID,
		ls.IsFirstInnings, ls.Target, ls.FirstInningsBalls,
		blobs[0], blobs[1], blobs[2], blobs[3], blobs[4], blobs[5],
		ls.Summary, ls.Result,
	}, nil
}

// liveRow receives a cricket_live_score row. Every column is nullable so the
// same scanner serves the LEFT JOIN in fixture listings.
type liveRow struct {
	MatchID           *int64
	TossWinner        *string
	TossDecision      *string
	CurrentStatus     *string
	BreakStatus       *string
	Counters          [8]*int
	StrikerID         *int64
	NonStrikerID      *int64
	BowlerID          *int64
	IsFirstInnings    *bool
	Target            *int
	FirstInningsBalls *int
	Blobs             [6][]byte
	Summary           *string
	Result            *string
	LastUpdated       *time.Time
}

func (r *liveRow) dest() []any {
	d := []any{&r.MatchID, &r.TossWinner, &r.TossDecision, &r.CurrentStatus, &r.BreakStatus}
	for i := range r.Counters {
		d = append(d, &r.Counters[i])
	}
	d = append(d, &r.StrikerID, &r.NonStrikerID, &r.BowlerID,
		&r.IsFirstInnings, &r.Target, &r.FirstInningsBalls)
	for i := range r.Blobs {
		d = append(d, &r.Blobs[i])
	}
	return append(d, &r.Summary, &r.Result, &r.LastUpdated)
}

func (r *liveRow) liveScore() (cricket.LiveScore, error) {
	ls := cricket.LiveScore{
		TossWinner:        r.TossWinner,
		BreakStatus:       r.BreakStatus,
		StrikerID:         r.StrikerID,
		NonStrikerID:      r.NonStrikerID,
		BowlerID:          r.BowlerID,
		IsFirstInnings:    r.IsFirstInnings,
		Target:            r.Target,
		FirstInningsBalls: r.FirstInningsBalls,
		CurrentStatus:     deref(r.CurrentStatus),
		Summary:           deref(r.Summary),
		Result:            deref(r.Result),
	}
	ls.MatchID = deref(r.MatchID)
	if r.LastUpdated != nil {
		ls.LastUpdated = r.LastUpdated.UTC()
	}
	if r.TossDecision != nil {
		d := cricket.TossDecision(*r.TossDecision)
		ls.TossDecision = &d
	}

	c := r.Counters
	ls.Team1Score, ls.Team1Wickets, ls.Team1Balls, ls.Team1Extras = deref(c[0]), deref(c[1]), deref(c[2]), deref(c[3])
	ls.Team2Score, ls.Team2Wickets, ls.Team2Balls, ls.Team2Extras = deref(c[4]), deref(c[5]), deref(c[6]), deref(c[7])

	targets := []any{&ls.Team1Batting, &ls.Team1Bowling, &ls.Team2Batting, &ls.Team2Bowling, &ls.Team1Timeline, &ls.Team2Timeline}
	for i, blob := range r.Blobs {
		if len(blob) == 0 {
			continue
		}
		if err := json.Unmarshal(blob, targets[i]); err != nil {
			return cricket.LiveScore{}, cricket.StorageUnavailableError(
				fmt.Sprintf("decode live score %d", ls.MatchID), err)
		}
	}
	ls.Normalize()
	return ls, nil
}

// --------------------------------------------------------------------------
// Error mapping
// --------------------------------------------------------------------------

// mapError translates a driver failure into the domain taxonomy.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := cricket.AsError(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &cricket.Error{Kind: cricket.KindNotFound, Code: cricket.CodeNotFound, Message: op + ": no rows", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23514", pgErr.Code == "23505":
			e := cricket.ConstraintViolationError("%s: %s", op, constraintDetail(pgErr))
			e.Err = err
			return e
		case pgErr.Code == "23503":
			return &cricket.Error{Kind: cricket.KindNotFound, Code: cricket.CodeNotFound, Message: op + ": referenced match does not exist", Err: err}
		case pgErr.Code == "23502", strings.HasPrefix(pgErr.Code, "22"):
			e := cricket.ValidationError("%s: %s", op, pgErr.Message)
			e.Err = err
			return e
		}
	}
	return cricket.StorageUnavailableError(op, err)
}

func constraintDetail(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "violates " + pgErr.ConstraintName
	}
	return pgErr.Message
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

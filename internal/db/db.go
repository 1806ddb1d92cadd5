// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema provisioning and health checking.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vpsports/scorekeeper/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Migrate applies the embedded schema. It opens its own connection because
// the pool's AfterConnect hook prepares statements against tables that may
// not exist yet.
func Migrate(ctx context.Context, databaseURL string) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Schema returns the embedded DDL.
func Schema() string { return schemaSQL }

// Column lists shared by the live-score statements. Order matters: the store
// binds and scans positionally.
const (
	fixtureColumns = `m.match_id, m.team_a_name, m.team_b_name, m.team_a_players, m.team_b_players,
		m.overs_per_innings, m.start_time, m.venue, m.umpires, m.match_status, m.created_at`

	liveScoreColumns = `match_id, toss_winner, toss_decision, current_status, break_status,
		team1_score, team1_wickets, team1_balls, team1_extras,
		team2_score, team2_wickets, team2_balls, team2_extras,
		striker_id, non_striker_id, bowler_id,
		is_first_innings, target, first_innings_balls,
		team1_batting_stats, team1_bowling_stats, team2_batting_stats, team2_bowling_stats,
		team1_timeline, team2_timeline, summary, live_result`

	liveScoreParams = `$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27`

	// Prefixed with l. for the list join.
	joinedLiveColumns = `l.match_id, l.toss_winner, l.toss_decision, l.current_status, l.break_status,
		l.team1_score, l.team1_wickets, l.team1_balls, l.team1_extras,
		l.team2_score, l.team2_wickets, l.team2_balls, l.team2_extras,
		l.striker_id, l.non_striker_id, l.bowler_id,
		l.is_first_innings, l.target, l.first_innings_balls,
		l.team1_batting_stats, l.team1_bowling_stats, l.team2_batting_stats, l.team2_bowling_stats,
		l.team1_timeline, l.team2_timeline, l.summary, l.live_result, l.last_updated`

	// Strictly increasing per row even when two writes share a transaction
	// timestamp.
	nextStamp = `GREATEST(NOW(), cricket_live_score.last_updated + INTERVAL '1 microsecond')`
)

// Statements maps prepared statement names to SQL. The store refers to
// statements by name only.
var Statements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Fixtures
	"fixture_insert": `INSERT INTO cricket_match (
			team_a_name, team_b_name, team_a_players, team_b_players,
			overs_per_innings, start_time, venue, umpires, match_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'upcoming')
		RETURNING match_id`,
	"fixture_by_id": "SELECT " + fixtureColumns + " FROM cricket_match m WHERE m.match_id = $1",
	"fixture_transition": `UPDATE cricket_match SET match_status = $3
		WHERE match_id = $1 AND match_status = $2`,

	// Fixture listings, left-joined with live scores
	"fixtures_after": "SELECT " + fixtureColumns + ", " + joinedLiveColumns + `
		FROM cricket_match m LEFT JOIN cricket_live_score l ON l.match_id = m.match_id
		WHERE m.match_status = $1 AND m.start_time > $2
		ORDER BY m.start_time ASC, m.match_id ASC`,
	"fixtures_asc": "SELECT " + fixtureColumns + ", " + joinedLiveColumns + `
		FROM cricket_match m LEFT JOIN cricket_live_score l ON l.match_id = m.match_id
		WHERE m.match_status = $1
		ORDER BY m.start_time ASC, m.match_id ASC`,
	"fixtures_desc": "SELECT " + fixtureColumns + ", " + joinedLiveColumns + `
		FROM cricket_match m LEFT JOIN cricket_live_score l ON l.match_id = m.match_id
		WHERE m.match_status = $1
		ORDER BY m.start_time DESC, m.match_id ASC`,

	// Live scores
	"live_score_by_id": "SELECT " + liveScoreColumns + ", last_updated FROM cricket_live_score WHERE match_id = $1",
	"live_score_insert": "INSERT INTO cricket_live_score (" + liveScoreColumns + ") VALUES (" + liveScoreParams + `)
		ON CONFLICT (match_id) DO NOTHING`,
	"live_score_upsert": "INSERT INTO cricket_live_score (" + liveScoreColumns + ") VALUES (" + liveScoreParams + `)
		ON CONFLICT (match_id) DO UPDATE SET
			toss_winner = EXCLUDED.toss_winner,
			toss_decision = EXCLUDED.toss_decision,
			current_status = EXCLUDED.current_status,
			break_status = EXCLUDED.break_status,
			team1_score = EXCLUDED.team1_score,
			team1_wickets = EXCLUDED.team1_wickets,
			team1_balls = EXCLUDED.team1_balls,
			team1_extras = EXCLUDED.team1_extras,
			team2_score = EXCLUDED.team2_score,
			team2_wickets = EXCLUDED.team2_wickets,
			team2_balls = EXCLUDED.team2_balls,
			team2_extras = EXCLUDED.team2_extras,
			striker_id = EXCLUDED.striker_id,
			non_striker_id = EXCLUDED.non_striker_id,
			bowler_id = EXCLUDED.bowler_id,
			is_first_innings = EXCLUDED.is_first_innings,
			target = EXCLUDED.target,
			first_innings_balls = EXCLUDED.first_innings_balls,
			team1_batting_stats = EXCLUDED.team1_batting_stats,
			team1_bowling_stats = EXCLUDED.team1_bowling_stats,
			team2_batting_stats = EXCLUDED.team2_batting_stats,
			team2_bowling_stats = EXCLUDED.team2_bowling_stats,
			team1_timeline = EXCLUDED.team1_timeline,
			team2_timeline = EXCLUDED.team2_timeline,
			summary = EXCLUDED.summary,
			live_result = EXCLUDED.live_result,
			last_updated = ` + nextStamp + `
		RETURNING last_updated`,
	"live_score_set_status": `UPDATE cricket_live_score
		SET current_status = $2, last_updated = ` + nextStamp + `
		WHERE match_id = $1`,
}

// registerPreparedStatements registers all statements the store uses.
// Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/db"
)

// Backend is the full storage surface. Both Postgres and Memory implement it.
type Backend interface {
	Ping(ctx context.Context) error
	Close()

	InsertFixture(ctx context.Context, f cricket.Fixture) (int64, error)
	GetFixture(ctx context.Context, id int64) (cricket.Fixture, error)
	ListFixtures(ctx context.Context, q cricket.ListQuery) ([]cricket.FixtureScore, error)
	TransitionFixture(ctx context.Context, id int64, from, to cricket.Status) (bool, error)

	GetLiveScore(ctx context.Context, id int64) (cricket.LiveScore, error)
	InsertLiveScore(ctx context.Context, ls cricket.LiveScore) (bool, error)
	UpsertLiveScore(ctx context.Context, ls cricket.LiveScore) (time.Time, error)
	SetLiveStatus(ctx context.Context, id int64, status string) error
}

var (
	_ Backend = (*Postgres)(nil)
	_ Backend = (*Memory)(nil)
)

// Open constructs the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return NewMemory(), nil
	case config.DriverPostgres:
		logger.Info("Connecting to database...")
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		return &Postgres{q: pool, ping: pool.HealthCheck, close: pool.Close}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

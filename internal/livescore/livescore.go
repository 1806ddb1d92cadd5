// Package livescore owns the per-match live-score aggregate: lazy creation of
// the default state and full-replace upserts from the scorer client.
package livescore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/metrics"
)

// Store is the storage the service needs.
type Store interface {
	GetFixture(ctx context.Context, id int64) (cricket.Fixture, error)
	GetLiveScore(ctx context.Context, id int64) (cricket.LiveScore, error)
	InsertLiveScore(ctx context.Context, ls cricket.LiveScore) (bool, error)
	UpsertLiveScore(ctx context.Context, ls cricket.LiveScore) (time.Time, error)
}

// Lifecycle advances a fixture. Implemented by fixture.Registry.
type Lifecycle interface {
	Advance(ctx context.Context, id int64, to cricket.Status) error
}

// Service reads and writes live scores.
type Service struct {
	store     Store
	lifecycle Lifecycle
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewService creates a live-score service. rec may be nil.
func NewService(store Store, lifecycle Lifecycle, logger *slog.Logger, rec *metrics.Recorder) *Service {
	return &Service{store: store, lifecycle: lifecycle, logger: logger, metrics: rec}
}

// GetOrInit returns the stored live score, creating the default one first if
// the match has none. Concurrent callers all observe the same row.
func (s *Service) GetOrInit(ctx context.Context, id int64) (cricket.LiveScore, error) {
	ls, err := s.store.GetLiveScore(ctx, id)
	if err == nil || !cricket.IsNotFound(err) {
		return ls, err
	}

	f, err := s.store.GetFixture(ctx, id)
	if err != nil {
		return cricket.LiveScore{}, err
	}
	inserted, err := s.store.InsertLiveScore(ctx, cricket.DefaultLiveScore(f))
	if err != nil {
		return cricket.LiveScore{}, err
	}
	if inserted {
		s.logger.Debug("Live score initialised", "match_id", id, "status", f.Status)
	}
	return s.store.GetLiveScore(ctx, id)
}

// GetWithFixture returns a match and its live score, initialising the live
// score when needed.
func (s *Service) GetWithFixture(ctx context.Context, id int64) (cricket.Fixture, cricket.LiveScore, error) {
	f, err := s.store.GetFixture(ctx, id)
	if err != nil {
		return cricket.Fixture{}, cricket.LiveScore{}, err
	}
	ls, err := s.GetOrInit(ctx, id)
	if err != nil {
		return cricket.Fixture{}, cricket.LiveScore{}, err
	}
	return f, ls, nil
}

// UpsertResult reports a committed update.
type UpsertResult struct {
	LastUpdated time.Time `json:"last_updated"`
	// Finished is set when the update carried the finished sentinel and the
	// match was advanced.
	Finished bool     `json:"finished"`
	Warnings []string `json:"warnings,omitempty"`
}

// Upsert replaces the whole live score of a match with p. Nothing is written
// when p is invalid. A "Finished" status then advances the match; failing to
// do so is a warning, and the score update stands.
func (s *Service) Upsert(ctx context.Context, id int64, p Payload) (UpsertResult, error) {
	ls, err := p.LiveScore(id)
	if err != nil {
		s.metrics.RecordScoreUpdate(cricket.KindOf(err).String())
		return UpsertResult{}, err
	}

	stamped, err := s.store.UpsertLiveScore(ctx, ls)
	if err != nil {
		s.metrics.RecordScoreUpdate(cricket.KindOf(err).String())
		return UpsertResult{}, err
	}
	s.metrics.RecordScoreUpdate("ok")
	s.logger.Debug("Live score updated", "match_id", id, "status", ls.CurrentStatus)

	res := UpsertResult{LastUpdated: stamped}
	if ls.CurrentStatus != cricket.FinishedSentinel {
		return res, nil
	}
	if err := s.lifecycle.Advance(ctx, id, cricket.StatusFinished); err != nil {
		s.metrics.RecordWarning("finish_match")
		s.logger.Warn("Secondary write failed", "op", "finish_match", "match_id", id, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("finish_match failed: %v", err))
		return res, nil
	}
	res.Finished = true
	return res, nil
}

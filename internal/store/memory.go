package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// Memory keeps fixtures and live scores in process. It enforces the same
// uniqueness, foreign-key and conditional-update rules as Postgres, which
// makes it suitable for tests and local runs without a database.
type Memory struct {
	mu       sync.RWMutex
	nextID   int64
	fixtures map[int64]cricket.Fixture
	scores   map[int64]cricket.LiveScore
	now      func() time.Time
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		fixtures: make(map[int64]cricket.Fixture),
		scores:   make(map[int64]cricket.LiveScore),
		now:      time.Now,
	}
}

// WithClock replaces the store's clock. Intended for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() {}

func (m *Memory) InsertFixture(_ context.Context, f cricket.Fixture) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	f.ID = m.nextID
	if f.Status == "" {
		f.Status = cricket.StatusUpcoming
	}
	f.CreatedAt = m.now().UTC()
	m.fixtures[f.ID] = cloneFixture(f)
	return f.ID, nil
}

func (m *Memory) GetFixture(_ context.Context, id int64) (cricket.Fixture, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.fixtures[id]
	if !ok {
		return cricket.Fixture{}, cricket.NotFoundError("match", id)
	}
	return cloneFixture(f), nil
}

func (m *Memory) ListFixtures(_ context.Context, q cricket.ListQuery) ([]cricket.FixtureScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]cricket.FixtureScore, 0)
	for _, f := range m.fixtures {
		if f.Status != q.Status {
			continue
		}
		if q.StartsAfter != nil && !f.StartTime.After(*q.StartsAfter) {
			continue
		}
		entry := cricket.FixtureScore{Fixture: cloneFixture(f)}
		if ls, ok := m.scores[f.ID]; ok {
			c := cloneLiveScore(ls)
			entry.Live = &c
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Fixture, result[j].Fixture
		if !a.StartTime.Equal(b.StartTime) {
			if q.Descending {
				return a.StartTime.After(b.StartTime)
			}
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (m *Memory) TransitionFixture(_ context.Context, id int64, from, to cricket.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.fixtures[id]
	if !ok || f.Status != from {
		return false, nil
	}
	f.Status = to
	m.fixtures[id] = f
	return true, nil
}

func (m *Memory) GetLiveScore(_ context.Context, id int64) (cricket.LiveScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ls, ok := m.scores[id]
	if !ok {
		return cricket.LiveScore{}, cricket.NotFoundError("live score", id)
	}
	return cloneLiveScore(ls), nil
}

func (m *Memory) InsertLiveScore(_ context.Context, ls cricket.LiveScore) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fixtures[ls.MatchID]; !ok {
		return false, cricket.NotFoundError("match", ls.MatchID)
	}
	if _, exists := m.scores[ls.MatchID]; exists {
		return false, nil
	}
	ls.LastUpdated = m.stamp(time.Time{})
	m.scores[ls.MatchID] = cloneLiveScore(ls)
	return true, nil
}

func (m *Memory) UpsertLiveScore(_ context.Context, ls cricket.LiveScore) (time.Time, error) {
	if ls.TossDecision != nil && !ls.TossDecision.Valid() {
		return time.Time{}, cricket.ConstraintViolationError("toss_decision must be Bat or Bowl")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fixtures[ls.MatchID]; !ok {
		return time.Time{}, cricket.NotFoundError("match", ls.MatchID)
	}
	ls.LastUpdated = m.stamp(m.scores[ls.MatchID].LastUpdated)
	m.scores[ls.MatchID] = cloneLiveScore(ls)
	return ls.LastUpdated, nil
}

func (m *Memory) SetLiveStatus(_ context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ls, ok := m.scores[id]
	if !ok {
		return cricket.NotFoundError("live score", id)
	}
	ls.CurrentStatus = status
	ls.LastUpdated = m.stamp(ls.LastUpdated)
	m.scores[id] = ls
	return nil
}

// stamp returns a timestamp strictly after prev, at microsecond precision to
// match Postgres.
func (m *Memory) stamp(prev time.Time) time.Time {
	t := m.now().UTC().Truncate(time.Microsecond)
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

func cloneFixture(f cricket.Fixture) cricket.Fixture {
	f.TeamAPlayers = slices.Clone(f.TeamAPlayers)
	f.TeamBPlayers = slices.Clone(f.TeamBPlayers)
	f.Umpires = slices.Clone(f.Umpires)
	return f
}

func cloneLiveScore(ls cricket.LiveScore) cricket.LiveScore {
	ls.Team1Batting = slices.Clone(ls.Team1Batting)
	ls.Team2Batting = slices.Clone(ls.Team2Batting)
	ls.Team1Bowling = slices.Clone(ls.Team1Bowling)
	ls.Team2Bowling = slices.Clone(ls.Team2Bowling)
	ls.Team1Timeline = slices.Clone(ls.Team1Timeline)
	ls.Team2Timeline = slices.Clone(ls.Team2Timeline)
	ls.TossWinner = clonePtr(ls.TossWinner)
	ls.TossDecision = clonePtr(ls.TossDecision)
	ls.BreakStatus = clonePtr(ls.BreakStatus)
	ls.StrikerID = clonePtr(ls.StrikerID)
	ls.NonStrikerID = clonePtr(ls.NonStrikerID)
	ls.BowlerID = clonePtr(ls.BowlerID)
	ls.IsFirstInnings = clonePtr(ls.IsFirstInnings)
	ls.Target = clonePtr(ls.Target)
	ls.FirstInningsBalls = clonePtr(ls.FirstInningsBalls)
	return ls
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

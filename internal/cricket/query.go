package cricket

import "time"

// ListQuery selects fixtures by lifecycle state.
type ListQuery struct {
	Status Status
	// StartsAfter, when set, keeps only fixtures starting strictly later.
	StartsAfter *time.Time
	// Descending orders by start time, most recent first.
	Descending bool
}

// FixtureScore is a fixture joined with its live score, which is nil when the
// fixture has none yet.
type FixtureScore struct {
	Fixture Fixture
	Live    *LiveScore
}

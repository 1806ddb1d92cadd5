package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/metrics"
	"github.com/vpsports/scorekeeper/internal/presenter"
)

// Store is the storage the registry needs.
type Store interface {
	InsertFixture(ctx context.Context, f cricket.Fixture) (int64, error)
	GetFixture(ctx context.Context, id int64) (cricket.Fixture, error)
	ListFixtures(ctx context.Context, q cricket.ListQuery) ([]cricket.FixtureScore, error)
	TransitionFixture(ctx context.Context, id int64, from, to cricket.Status) (bool, error)
	InsertLiveScore(ctx context.Context, ls cricket.LiveScore) (bool, error)
	SetLiveStatus(ctx context.Context, id int64, status string) error
}

// maxAdvanceSteps bounds Advance when concurrent writers keep moving the
// fixture under it. The lifecycle has two edges.
const maxAdvanceSteps = 4

// Registry owns fixture creation, listing and lifecycle transitions.
type Registry struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	loc     *time.Location
}

// NewRegistry creates a registry. rec may be nil.
func NewRegistry(store Store, logger *slog.Logger, rec *metrics.Recorder) *Registry {
	return &Registry{
		store:   store,
		logger:  logger,
		metrics: rec,
		now:     time.Now,
		loc:     time.UTC,
	}
}

// WithClock replaces the clock used for the upcoming cutoff.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// WithLocation sets the zone list dates and times are rendered in.
func (r *Registry) WithLocation(loc *time.Location) *Registry {
	if loc != nil {
		r.loc = loc
	}
	return r
}

// Create persists a new upcoming fixture and seeds its default live score.
// A failed seed is reported as a warning; the live score is created lazily
// on first read instead.
func (r *Registry) Create(ctx context.Context, in NewFixture) (int64, []string, error) {
	f, err := in.Fixture()
	if err != nil {
		return 0, nil, err
	}

	id, err := r.store.InsertFixture(ctx, f)
	if err != nil {
		return 0, nil, err
	}
	f.ID = id
	r.logger.Info("Match created", "match_id", id, "team_a", f.TeamA, "team_b", f.TeamB, "start_time", f.StartTime)

	var warnings []string
	if _, err := r.store.InsertLiveScore(ctx, cricket.DefaultLiveScore(f)); err != nil {
		warnings = append(warnings, r.warn("seed_live_score", id, err))
	}
	return id, warnings, nil
}

// Get returns a fixture by id.
func (r *Registry) Get(ctx context.Context, id int64) (cricket.Fixture, error) {
	return r.store.GetFixture(ctx, id)
}

// List returns fixture summaries for a sport. Unknown sports yield an empty
// list. status is one of upcoming, live, recent or finished; anything else
// means upcoming.
func (r *Registry) List(ctx context.Context, sport, status string) ([]Summary, error) {
	if _, ok := config.LookupSport(sport); !ok {
		return []Summary{}, nil
	}

	rows, err := r.store.ListFixtures(ctx, r.listQuery(status))
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.summarize(row))
	}
	return out, nil
}

func (r *Registry) listQuery(status string) cricket.ListQuery {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "live":
		return cricket.ListQuery{Status: cricket.StatusLive}
	case "recent", "finished":
		return cricket.ListQuery{Status: cricket.StatusFinished, Descending: true}
	default:
		now := r.now().UTC()
		return cricket.ListQuery{Status: cricket.StatusUpcoming, StartsAfter: &now}
	}
}

func (r *Registry) summarize(row cricket.FixtureScore) Summary {
	f := row.Fixture
	ls := cricket.DefaultLiveScore(f)
	if row.Live != nil {
		ls = *row.Live
	}
	v := presenter.Present(f, ls)
	local := f.StartTime.In(r.loc)
	return Summary{
		ID:         f.ID,
		TeamA:      f.TeamA,
		TeamB:      f.TeamB,
		Venue:      f.Venue,
		Date:       local.Format(DateFormat),
		Time:       local.Format(TimeFormat),
		Status:     string(f.Status),
		TeamAScore: v.TeamAScore,
		TeamAOvers: v.TeamAOvers,
		TeamBScore: v.TeamBScore,
		TeamBOvers: v.TeamBOvers,
		Summary:    v.Summary,
		Result:     ls.Result,
	}
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

// Start moves an upcoming fixture to live. Exactly one of several concurrent
// callers succeeds; the others get an InvalidTransition error describing the
// state they lost to. Marking the live score as live is a secondary write and
// only produces a warning when it fails.
func (r *Registry) Start(ctx context.Context, id int64) ([]string, error) {
	f, err := r.store.GetFixture(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status != cricket.StatusUpcoming {
		return nil, cricket.InvalidTransitionError(id, f.Status, cricket.StatusLive)
	}

	ok, err := r.store.TransitionFixture(ctx, id, cricket.StatusUpcoming, cricket.StatusLive)
	if err != nil {
		return nil, err
	}
	if !ok {
		cur, err := r.store.GetFixture(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, cricket.InvalidTransitionError(id, cur.Status, cricket.StatusLive)
	}
	r.metrics.RecordTransition(string(cricket.StatusUpcoming), string(cricket.StatusLive))
	r.logger.Info("Match started", "match_id", id)

	f.Status = cricket.StatusLive
	if err := r.markLive(ctx, f); err != nil {
		return []string{r.warn("set_live_status", id, err)}, nil
	}
	return nil, nil
}

// markLive flips the live score's display status, creating the row when the
// create-time seed never happened.
func (r *Registry) markLive(ctx context.Context, f cricket.Fixture) error {
	err := r.store.SetLiveStatus(ctx, f.ID, string(cricket.StatusLive))
	if !cricket.IsNotFound(err) {
		return err
	}
	inserted, err := r.store.InsertLiveScore(ctx, cricket.DefaultLiveScore(f))
	if err != nil || inserted {
		return err
	}
	return r.store.SetLiveStatus(ctx, f.ID, string(cricket.StatusLive))
}

// Advance walks the fixture forward one guarded step at a time until it
// reaches to. It never moves a fixture backwards; a fixture already at or
// past to is left alone.
func (r *Registry) Advance(ctx context.Context, id int64, to cricket.Status) error {
	if !to.Valid() {
		return cricket.ValidationError("unknown match status %q", to)
	}
	for range maxAdvanceSteps {
		f, err := r.store.GetFixture(ctx, id)
		if err != nil {
			return err
		}
		if !f.Status.Before(to) {
			return nil
		}
		next, ok := f.Status.Next()
		if !ok {
			return nil
		}
		moved, err := r.store.TransitionFixture(ctx, id, f.Status, next)
		if err != nil {
			return err
		}
		if moved {
			r.metrics.RecordTransition(string(f.Status), string(next))
			r.logger.Info("Match advanced", "match_id", id, "from", f.Status, "to", next)
		}
	}
	return fmt.Errorf("advance match %d to %s: status kept changing", id, to)
}

func (r *Registry) warn(op string, id int64, err error) string {
	r.metrics.RecordWarning(op)
	r.logger.Warn("Secondary write failed", "op", op, "match_id", id, "error", err)
	return fmt.Sprintf("%s failed: %v", op, err)
}

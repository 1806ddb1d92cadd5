package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpsports/scorekeeper/internal/api/handler"
	"github.com/vpsports/scorekeeper/internal/api/respond"
	"github.com/vpsports/scorekeeper/internal/auth"
	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/fixture"
	"github.com/vpsports/scorekeeper/internal/livescore"
	"github.com/vpsports/scorekeeper/internal/metrics"
	"github.com/vpsports/scorekeeper/internal/scorecard"
	"github.com/vpsports/scorekeeper/internal/store"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		StorageDriver:    config.DriverMemory,
		CORSAllowOrigins: []string{"*"},
		MetricsEnabled:   true,
	}
	if mutate != nil {
		mutate(cfg)
	}

	st := store.NewMemory()
	rec := metrics.NewRecorder()
	reg := fixture.NewRegistry(st, logger, rec)
	scores := livescore.NewService(st, reg, logger, rec)
	renderer, err := scorecard.NewHTMLRenderer()
	require.NoError(t, err)
	h := handler.New(reg, scores, renderer, st, cfg.StorageDriver, logger)

	ts := &testServer{t: t, handler: NewRouter(h, cfg, rec, logger)}
	if cfg.ScorerJWTSecret != "" {
		ts.token, err = auth.Issue(cfg.ScorerJWTSecret, "test-scorer", time.Hour, time.Now())
		require.NoError(t, err)
	}
	return ts
}

func (s *testServer) do(method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) createMatch(start time.Time) int64 {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/matches", map[string]any{
		"team_a_name":    "Lions",
		"team_b_name":    "Tigers",
		"team_a_players": []string{"Ash", "Bo"},
		"team_b_players": []string{"Kai", "Lu"},
		"overs":          20,
		"start_time":     start.UTC().Format("2006-01-02 15:04:05"),
		"venue":          "Oval",
		"umpires":        []string{"Ump 1"},
	}, nil)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp handler.CreateMatchResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.t, "Match added successfully", resp.Message)
	return resp.ID
}

func path(id int64, suffix string) string {
	return "/api/v1/matches/" + strconv.FormatInt(id, 10) + suffix
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error.Code
}

func livePayload(status string) map[string]any {
	return map[string]any{
		"toss_winner":      "Tigers",
		"toss_decision":    "Bowl",
		"current_status":   status,
		"team1_score":      152,
		"team1_wickets":    6,
		"team1_balls":      120,
		"team1_extras":     9,
		"team2_score":      40,
		"team2_wickets":    1,
		"team2_balls":      17,
		"striker_id":       11,
		"non_striker_id":   12,
		"bowler_id":        1,
		"is_first_innings": false,
		"target":           153,
		"team1_batting": []map[string]any{
			{"player_id": 1, "name": "Ash", "runs": 80, "balls": 50, "status": "c Kai b Lu"},
			{"player_id": 2, "name": "Bo", "runs": 0, "balls": 0, "status": "Not Out"},
		},
		"team1_bowling": []map[string]any{
			{"player_id": 1, "name": "Ash", "balls": 17, "runs": 40, "wickets": 1},
		},
		"team2_batting": []map[string]any{
			{"player_id": 11, "name": "Kai", "runs": 25, "balls": 10, "status": "Not Out"},
			{"player_id": 12, "name": "Lu", "runs": 10, "balls": 7, "status": "Not Out"},
		},
		"team2_bowling":  []map[string]any{{"player_id": 13, "name": "Mo", "balls": 120, "runs": 152, "wickets": 6}},
		"team1_timeline": []string{"4", "6", "W"},
		"team2_timeline": []string{"1", "1"},
		"summary":        "Tigers need 113 runs",
	}
}

func TestHealthRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Process-Time"))

	w = s.do(http.MethodGet, "/health/db", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"driver":"memory"`)

	w = s.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scorekeeper_http_requests_total")
}

func TestMatchLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createMatch(time.Now().Add(24 * time.Hour))

	w := s.do(http.MethodGet, path(id, ""), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var f map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
	assert.Equal(t, "Lions", f["team_a_name"])
	assert.Equal(t, "upcoming", f["match_status"])
	assert.Equal(t, float64(20), f["overs_per_innings"])

	w = s.do(http.MethodGet, "/api/v1/sports/CRICKET/matches", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []fixture.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "0/0", list[0].TeamAScore)

	w = s.do(http.MethodPost, path(id, "/start"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, path(id, "/start"), nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_LIVE", errorCode(t, w))

	w = s.do(http.MethodGet, "/api/v1/sports/cricket/matches?status=live", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "live", list[0].Status)

	w = s.do(http.MethodPut, path(id, "/live"), livePayload("Finished"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var upd handler.UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upd))
	assert.True(t, upd.Finished)

	w = s.do(http.MethodPost, path(id, "/start"), nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_FINISHED", errorCode(t, w))

	w = s.do(http.MethodGet, "/api/v1/sports/cricket/matches?status=recent", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "152/6", list[0].TeamAScore)
	assert.Equal(t, "(20.0)", list[0].TeamAOvers)
	assert.Equal(t, "40/1", list[0].TeamBScore)
	assert.Equal(t, "(2.5)", list[0].TeamBOvers)
}

func TestCreateMatchValidation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/v1/matches", map[string]any{"team_a_name": "Lions"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/v1/matches", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/matches", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMatchErrors(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, path(404, ""), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = s.do(http.MethodGet, "/api/v1/matches/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/nowhere", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLiveScoreRoundTripAndSummary(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createMatch(time.Now().Add(time.Hour))

	w := s.do(http.MethodGet, path(id, "/live"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var before map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))
	assert.Equal(t, "upcoming", before["current_status"])
	assert.Equal(t, []any{}, before["team1_batting"])

	w = s.do(http.MethodPost, path(id, "/live"), livePayload("live"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, path(id, "/live"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var after map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Equal(t, "Bowl", after["toss_decision"])
	assert.Equal(t, float64(17), after["team2_balls"])
	assert.Len(t, after["team2_batting"], 2)
	stampBefore, err := time.Parse(time.RFC3339Nano, before["last_updated"].(string))
	require.NoError(t, err)
	stampAfter, err := time.Parse(time.RFC3339Nano, after["last_updated"].(string))
	require.NoError(t, err)
	assert.True(t, stampAfter.After(stampBefore))

	w = s.do(http.MethodGet, path(id, "/summary"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	var view map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	// Tigers won the toss and bowled, so Lions batted first and Tigers chase.
	assert.Equal(t, "Tigers", view["batting_team"])
	assert.Equal(t, "Lions", view["bowling_team"])
	assert.Equal(t, map[string]any{"name": "Kai", "figure": "25(10)"}, view["striker"])
	assert.Equal(t, map[string]any{"name": "Ash", "figure": "1/40 (2.5)"}, view["bowler"])
	assert.Equal(t, "Tigers need 113 runs", view["summary"])

	w = s.do(http.MethodGet, path(id, "/summary"), nil, map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestLiveScoreRejectsBadToss(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createMatch(time.Now().Add(time.Hour))

	p := livePayload("live")
	p["toss_decision"] = "Sideways"
	w := s.do(http.MethodPut, path(id, "/live"), p, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "CONSTRAINT_VIOLATION", errorCode(t, w))

	w = s.do(http.MethodGet, path(id, "/live"), nil, nil)
	var ls map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ls))
	assert.Nil(t, ls["toss_decision"])
	assert.Equal(t, "upcoming", ls["current_status"])

	p = livePayload("live")
	p["team1_batting"] = "not a list"
	w = s.do(http.MethodPut, path(id, "/live"), p, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, path(999, "/live"), livePayload("live"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScorecardFormats(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createMatch(time.Now().Add(time.Hour))
	w := s.do(http.MethodPut, path(id, "/live"), livePayload("Finished"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path(id, "/scorecard"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sc scorecard.Scorecard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sc))
	assert.Equal(t, "Lions", sc.Innings[0].BattingTeam)
	assert.Equal(t, "152/6", sc.Innings[0].Total)
	assert.Len(t, sc.Innings[0].Batting, 1, "zero-ball not-out batsman dropped from innings one")

	w = s.do(http.MethodGet, path(id, "/scorecard?format=html"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Lions vs Tigers")

	w = s.do(http.MethodGet, path(id, "/scorecard?format=pdf"), nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", errorCode(t, w))
}

func TestLegacyRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodPost, "/api/add_cricket_match", map[string]any{
		"team_a_name": "A", "team_b_name": "B", "overs": "10",
		"start_time": time.Now().Add(time.Hour).UTC().Format(time.RFC3339), "venue": "V",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/get_matches/cricket", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []fixture.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = s.do(http.MethodGet, "/api/get_match_details/"+strconv.FormatInt(list[0].ID, 10), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/start_match/"+strconv.FormatInt(list[0].ID, 10), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/get_matches/football", nil, nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestScorerAuthGuardsWrites(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.ScorerJWTSecret = "s3cret" })
	id := s.createMatch(time.Now().Add(time.Hour))

	token := s.token
	s.token = ""
	w := s.do(http.MethodPost, path(id, "/start"), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = s.do(http.MethodPost, path(id, "/start"), nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, path(id, "/summary"), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code, "reads stay open")

	s.token = token
	w = s.do(http.MethodPost, path(id, "/start"), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.RateLimitEnabled = true
		c.RateLimitRequests = 2
		c.RateLimitWindow = time.Hour
	})

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil, nil).Code)
	w := s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
}

func TestIPLimiterPerClientBuckets(t *testing.T) {
	l := newIPLimiter(10, time.Minute)
	assert.Equal(t, 5, l.burst)
	assert.InDelta(t, 10.0/60.0, float64(l.rate), 1e-9)

	a := l.getLimiter("10.0.0.1")
	assert.Same(t, a, l.getLimiter("10.0.0.1"))
	assert.NotSame(t, a, l.getLimiter("10.0.0.2"))

	assert.Equal(t, 1, newIPLimiter(1, time.Second).burst)
}

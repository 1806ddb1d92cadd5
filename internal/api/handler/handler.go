// Package handler provides HTTP handlers for all API endpoints. Handlers
// decode requests, call the registry or live-score service, and write JSON
// through the respond package.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vpsports/scorekeeper/internal/api/respond"
	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/fixture"
	"github.com/vpsports/scorekeeper/internal/livescore"
	"github.com/vpsports/scorekeeper/internal/scorecard"
)

// maxBodyBytes caps request bodies. A full live-score payload with both
// rosters and timelines stays well under this.
const maxBodyBytes = 1 << 20

// Registry is the match registry surface the handlers use.
type Registry interface {
	Create(ctx context.Context, in fixture.NewFixture) (int64, []string, error)
	List(ctx context.Context, sport, status string) ([]fixture.Summary, error)
	Get(ctx context.Context, id int64) (cricket.Fixture, error)
	Start(ctx context.Context, id int64) ([]string, error)
}

// Scores is the live-score surface the handlers use.
type Scores interface {
	GetOrInit(ctx context.Context, id int64) (cricket.LiveScore, error)
	GetWithFixture(ctx context.Context, id int64) (cricket.Fixture, cricket.LiveScore, error)
	Upsert(ctx context.Context, id int64, p livescore.Payload) (livescore.UpsertResult, error)
}

// Pinger reports storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	registry Registry
	scores   Scores
	renderer scorecard.Renderer
	storage  Pinger
	driver   string
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies. driver names the storage
// backend for health output.
func New(registry Registry, scores Scores, renderer scorecard.Renderer, storage Pinger, driver string, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		scores:   scores,
		renderer: renderer,
		storage:  storage,
		driver:   driver,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"name":    "Scorekeeper API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"storage": h.driver,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies storage connectivity.
// @Summary Storage health check
// @Description Verifies the storage backend is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		h.logger.Warn("Storage health check failed", "driver", h.driver, "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"driver":    h.driver,
			"error":     "Storage connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"driver":    h.driver,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// matchID parses the {matchID} path segment.
func matchID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "matchID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, cricket.ValidationError("matchID must be a positive integer, got %q", raw)
	}
	return id, nil
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return cricket.ValidationError("request body is empty")
		case errors.As(err, &maxErr):
			return cricket.ValidationError("request body exceeds %d bytes", maxErr.Limit)
		default:
			return cricket.ValidationError("malformed JSON body: %v", err)
		}
	}
	return nil
}

// fail writes err and logs server-side failures.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := respond.StatusFor(cricket.KindOf(err))
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			"method", r.Method, "path", r.URL.Path, "status", status,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	respond.WriteAppError(w, err)
}

func writeObject(w http.ResponseWriter, status int, v any) {
	respond.WriteJSONObject(w, status, v)
}

func respondInvalidFormat(w http.ResponseWriter, format string) {
	respond.WriteError(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be 'json' or 'html', got '"+format+"'")
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// writeETagged encodes v and honours If-None-Match.
func (h *Handler) writeETagged(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.fail(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	etag := respond.ComputeETag(data)
	if respond.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag)
}

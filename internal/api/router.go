// Package api wires the HTTP surface: chi router, middleware stack and
// routes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/vpsports/scorekeeper/internal/api/handler"
	"github.com/vpsports/scorekeeper/internal/api/respond"
	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/metrics"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. rec may be nil, in which case /metrics is not mounted.
func NewRouter(h *handler.Handler, cfg *config.Config, rec *metrics.Recorder, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(MetricsMiddleware(rec, logger))
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Request-Id", "Location", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})

	scorer := ScorerAuthMiddleware(cfg.ScorerJWTSecret, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
	})

	if rec != nil && cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", rec.Handler())
	}

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Fixtures
		r.Get("/sports/{sport}/matches", h.ListMatches)
		r.With(scorer).Post("/matches", h.CreateMatch)
		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", h.GetMatch)
			r.With(scorer).Post("/start", h.StartMatch)

			// Live scores
			r.Get("/live", h.GetLiveScore)
			r.With(scorer).Put("/live", h.UpdateLiveScore)
			r.With(scorer).Post("/live", h.UpdateLiveScore)
			r.Get("/summary", h.GetSummary)
			r.Get("/scorecard", h.GetScorecard)
		})
	})

	// Paths used by the first mobile client.
	r.With(scorer).Post("/api/add_cricket_match", h.CreateMatch)
	r.Get("/api/get_matches/{sport}", h.ListMatches)
	r.Get("/api/get_match_details/{matchID}", h.GetMatch)
	r.With(scorer).Post("/api/start_match/{matchID}", h.StartMatch)

	return r
}

package handler

import (
	"net/http"
	"time"

	"github.com/vpsports/scorekeeper/internal/livescore"
	"github.com/vpsports/scorekeeper/internal/presenter"
	"github.com/vpsports/scorekeeper/internal/scorecard"
)

// UpdateResponse acknowledges a live-score submission.
type UpdateResponse struct {
	Message     string    `json:"message"`
	LastUpdated time.Time `json:"last_updated"`
	Finished    bool      `json:"finished"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// GetLiveScore returns the raw live-score state.
// @Summary Get live score
// @Description Returns the stored live-score state, creating the default state if the match has none yet.
// @Tags live
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} cricket.LiveScore
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID}/live [get]
func (h *Handler) GetLiveScore(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ls, err := h.scores.GetOrInit(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeETagged(w, r, ls)
}

// UpdateLiveScore replaces the live-score state.
// @Summary Submit live score
// @Description Replaces the whole live-score state. Absent fields are cleared. A current_status of exactly "Finished" also finishes the match.
// @Tags live
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param score body livescore.Payload true "Full live-score state"
// @Success 200 {object} UpdateResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Security ScorerToken
// @Router /matches/{matchID}/live [put]
func (h *Handler) UpdateLiveScore(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var p livescore.Payload
	if err := decodeBody(w, r, &p); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.scores.Upsert(r.Context(), id, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeObject(w, http.StatusOK, UpdateResponse{
		Message:     "Live score updated",
		LastUpdated: res.LastUpdated,
		Finished:    res.Finished,
		Warnings:    res.Warnings,
	})
}

// GetSummary returns the viewer presentation of a match.
// @Summary Get match summary
// @Description Returns formatted scores, batting and bowling sides, on-field players and the display summary. Supports If-None-Match.
// @Tags live
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} presenter.View
// @Success 304
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	f, ls, err := h.scores.GetWithFixture(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeETagged(w, r, presenter.Present(f, ls))
}

// GetScorecard returns the innings-ordered scorecard.
// @Summary Get scorecard
// @Description Returns the compiled scorecard as JSON, or as a printable HTML document with format=html.
// @Tags live
// @Produce json,html
// @Param matchID path int true "Match ID"
// @Param format query string false "Output format" Enums(json, html) default(json)
// @Success 200 {object} scorecard.Scorecard
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID}/scorecard [get]
func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "html" {
		respondInvalidFormat(w, format)
		return
	}

	f, ls, err := h.scores.GetWithFixture(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sc := scorecard.Compile(f, ls)

	if format != "html" {
		writeObject(w, http.StatusOK, sc)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.Header().Set("Content-Disposition", "inline; filename=\"scorecard-"+itoa(id)+".html\"")
	if err := h.renderer.Render(w, sc); err != nil {
		// Headers may be gone already; log only.
		h.logger.Error("Scorecard render failed", "match_id", id, "error", err)
	}
}

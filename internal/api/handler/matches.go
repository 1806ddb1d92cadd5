package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vpsports/scorekeeper/internal/fixture"
)

// CreateMatchResponse is returned by CreateMatch.
type CreateMatchResponse struct {
	ID       int64    `json:"id"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// MessageResponse is a plain acknowledgement with optional warnings.
type MessageResponse struct {
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// CreateMatch registers a new fixture.
// @Summary Create match
// @Description Registers an upcoming cricket match and seeds its default live score. Overs may be a number or numeric string; start_time accepts ISO-8601 with a space or T separator.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body fixture.NewFixture true "Match setup"
// @Success 201 {object} CreateMatchResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /matches [post]
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var in fixture.NewFixture
	if err := decodeBody(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	id, warnings, err := h.registry.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeCreated(w, id, warnings)
}

func writeCreated(w http.ResponseWriter, id int64, warnings []string) {
	w.Header().Set("Location", "/api/v1/matches/"+itoa(id))
	writeObject(w, http.StatusCreated, CreateMatchResponse{
		ID:       id,
		Message:  "Match added successfully",
		Warnings: warnings,
	})
}

// ListMatches lists fixtures of a sport by status.
// @Summary List matches
// @Description Lists matches for a sport. upcoming (default) returns future upcoming matches soonest first; live returns live matches; recent or finished returns finished matches most recent first. Unknown sports return an empty list.
// @Tags matches
// @Produce json
// @Param sport path string true "Sport" example(cricket)
// @Param status query string false "Lifecycle filter" Enums(upcoming, live, recent, finished) default(upcoming)
// @Success 200 {array} fixture.Summary
// @Failure 503 {object} respond.ErrorResponse
// @Router /sports/{sport}/matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.registry.List(r.Context(), chi.URLParam(r, "sport"), r.URL.Query().Get("status"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeObject(w, http.StatusOK, summaries)
}

// GetMatch returns a fixture.
// @Summary Get match
// @Description Returns the full match record.
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} cricket.Fixture
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	f, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeObject(w, http.StatusOK, f)
}

// StartMatch moves an upcoming match to live.
// @Summary Start match
// @Description Moves an upcoming match to live. Fails with ALREADY_LIVE, ALREADY_FINISHED or NOT_UPCOMING otherwise.
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Security ScorerToken
// @Router /matches/{matchID}/start [post]
func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	warnings, err := h.registry.Start(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeObject(w, http.StatusOK, MessageResponse{Message: "Match started successfully", Warnings: warnings})
}

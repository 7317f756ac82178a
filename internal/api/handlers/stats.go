package handlers

import (
	"errors"
	"net/http"

	"github.com/ani/grid-game-engine/internal/domain"
	"github.com/ani/grid-game-engine/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	stats, err := h.statsService.GetUserStats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")

	entries, err := h.statsService.GetLeaderboard(r.Context(), metric)
	if err != nil {
		// An unknown metric is a sentinel response, not a failure.
		if errors.Is(err, domain.ErrUnsupportedMetric) {
			writeJSON(w, http.StatusOK, "unsupported metric")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

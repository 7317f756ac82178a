package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ani/grid-game-engine/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the closed error set onto HTTP statuses. Conflict and
// CellOccupied get 409 so callers know the request is retryable.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrMatchFull),
		errors.Is(err, domain.ErrAlreadySeated),
		errors.Is(err, domain.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrCellOccupied):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

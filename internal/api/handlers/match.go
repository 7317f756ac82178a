package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ani/grid-game-engine/internal/service"
	"github.com/ani/grid-game-engine/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchService *service.MatchService
	hub          *websocket.Hub
}

func NewMatchHandler(matchService *service.MatchService, hub *websocket.Hub) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		hub:          hub,
	}
}

type CreateMatchRequest struct {
	CreatorID string `json:"creatorId"`
}

type CreateMatchResponse struct {
	MatchID string `json:"matchId"`
}

type JoinMatchRequest struct {
	UserID string `json:"userId"`
}

type MoveRequest struct {
	UserID string `json:"userId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	creatorID, err := uuid.Parse(req.CreatorID)
	if err != nil {
		http.Error(w, "Invalid creator id", http.StatusBadRequest)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), creatorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateMatchResponse{MatchID: match.ID.String()})
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	view, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	var req JoinMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	view, err := h.matchService.JoinMatch(r.Context(), matchID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.hub.BroadcastMatch(matchID, view)
	writeJSON(w, http.StatusOK, view)
}

func (h *MatchHandler) Move(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	view, err := h.matchService.SubmitMove(r.Context(), matchID, userID, req.Row, req.Col)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.hub.BroadcastMatch(matchID, view)
	writeJSON(w, http.StatusOK, view)
}

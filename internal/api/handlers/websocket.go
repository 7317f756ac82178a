package handlers

import (
	"log"
	"net/http"

	"github.com/ani/grid-game-engine/internal/service"
	ws "github.com/ani/grid-game-engine/internal/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub          *ws.Hub
	matchService *service.MatchService
}

func NewWebSocketHandler(hub *ws.Hub, matchService *service.MatchService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		matchService: matchService,
	}
}

// Handle upgrades a watcher connection for a single match. The current view
// is pushed immediately so a late watcher does not wait for the next move.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(r.URL.Query().Get("match"))
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	view, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, matchID)
	h.hub.Subscribe(client)

	go client.WritePump()
	go client.ReadPump()

	h.hub.BroadcastMatch(matchID, view)
}

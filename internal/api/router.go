package api

import (
	"net/http"

	"github.com/ani/grid-game-engine/internal/api/handlers"
	"github.com/ani/grid-game-engine/internal/service"
	"github.com/ani/grid-game-engine/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.User)
	matchHandler := handlers.NewMatchHandler(services.Match, hub)
	statsHandler := handlers.NewStatsHandler(services.Stats)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Match)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Create)
			r.Get("/{id}/stats", statsHandler.GetUserStats)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", matchHandler.Create)
			r.Get("/{id}", matchHandler.Get)
			r.Post("/{id}/join", matchHandler.Join)
			r.Post("/{id}/move", matchHandler.Move)
		})

		r.Get("/leaderboard", statsHandler.GetLeaderboard)

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}

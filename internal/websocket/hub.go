// Package websocket pushes match views to spectators. Clients subscribe to a
// single match; the HTTP handlers broadcast a fresh view after every accepted
// join or move. Watchers are read-only, so the hub never feeds back into the
// turn protocol.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

type Hub struct {
	mu       sync.RWMutex
	watchers map[uuid.UUID]map[*Client]bool
	stopped  bool
}

func NewHub() *Hub {
	return &Hub{
		watchers: make(map[uuid.UUID]map[*Client]bool),
	}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		c.Close()
		return
	}
	clients, ok := h.watchers[c.matchID]
	if !ok {
		clients = make(map[*Client]bool)
		h.watchers[c.matchID] = clients
	}
	clients[c] = true
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.watchers[c.matchID]
	if !ok {
		return
	}
	if clients[c] {
		delete(clients, c)
		c.Close()
	}
	if len(clients) == 0 {
		delete(h.watchers, c.matchID)
	}
}

// BroadcastMatch sends the given view to every watcher of the match. Slow
// consumers with a full send buffer are dropped rather than blocking the
// request path. Delivery goes through Client.trySend, which refuses closed
// clients, so a watcher disconnecting mid-broadcast is dropped, not a panic.
func (h *Hub) BroadcastMatch(matchID uuid.UUID, view interface{}) {
	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("failed to marshal match view: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.watchers[matchID]))
	for c := range h.watchers[matchID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.trySend(data) {
			h.Unsubscribe(c)
		}
	}
}

// Stop closes every connected client. New subscriptions are refused.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for _, clients := range h.watchers {
		for c := range clients {
			c.Close()
		}
	}
	h.watchers = make(map[uuid.UUID]map[*Client]bool)
}

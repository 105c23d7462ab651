package socket

import (
	"sync"

	"go.uber.org/zap"
)

// Hub tracks the connected dashboard sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{sessions: make(map[string]*Session), log: log}
}

// Register adds a session to the Hub.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
	h.log.Info("websocket session registered", zap.String("session", s.ID))
}

// Unregister removes a session from the Hub.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[id]; ok {
		delete(h.sessions, id)
		h.log.Info("websocket session unregistered", zap.String("session", id))
	}
}

// Len reports the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

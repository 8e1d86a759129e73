package websocket

import (
	"encoding/json"
	"sync"

	"peerchat/internal/models"
	"peerchat/pkg/logger"
)

// Registry is the live mapping from user id to open connection. It holds at
// most one connection per id: registering over an existing entry is a silent
// takeover. The same type backs both the user-facing registry and the admin
// observer channel; they are separate instances with independent lifecycles.
type Registry struct {
	mu      sync.RWMutex
	clients map[int]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[int]*Client),
	}
}

// Register inserts or replaces the entry for userID. The replaced
// connection, if any, is not closed here; its own read pump detects the
// transport closing and cleans up.
func (r *Registry) Register(userID int, c *Client) {
	r.mu.Lock()
	r.clients[userID] = c
	r.mu.Unlock()
}

// Unregister removes the entry for userID, but only while c still owns it.
// The ownership check makes disconnect handling exactly-once: after a
// takeover, the old connection's late close no longer matches and becomes a
// no-op. Returns whether an entry was removed.
func (r *Registry) Unregister(userID int, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[userID]
	if !ok {
		return false
	}
	if c != nil && current != c {
		return false
	}
	delete(r.clients, userID)
	return true
}

// Send writes an enveloped event to one user. An unknown id means the
// recipient is offline and the call is a no-op. A full send buffer evicts
// the entry; the matching presence transition is left to the dead
// connection's read pump.
func (r *Registry) Send(userID int, kind string, data any) bool {
	frame, ok := r.encode(kind, data)
	if !ok {
		return false
	}

	r.mu.RLock()
	c, ok := r.clients[userID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	if !c.trySend(frame) {
		logger.Warn("Send buffer full for user %d, dropping connection", userID)
		if r.Unregister(userID, c) {
			c.closeSend()
		}
		return false
	}
	return true
}

// BroadcastAll delivers one enveloped event to every live connection.
func (r *Registry) BroadcastAll(kind string, data any) {
	frame, ok := r.encode(kind, data)
	if !ok {
		return
	}

	r.mu.Lock()
	for userID, c := range r.clients {
		if !c.trySend(frame) {
			delete(r.clients, userID)
			c.closeSend()
		}
	}
	r.mu.Unlock()
}

// OnlineUserIDs snapshots the currently registered ids.
func (r *Registry) OnlineUserIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.clients))
	for userID := range r.clients {
		ids = append(ids, userID)
	}
	return ids
}

func (r *Registry) encode(kind string, data any) ([]byte, bool) {
	env := models.WireEnvelope{
		Success: true,
		Data:    data,
		Message: kind,
	}
	frame, err := json.Marshal(env)
	if err != nil {
		logger.Error("Error marshaling %s envelope: %v", kind, err)
		return nil, false
	}
	return frame, true
}

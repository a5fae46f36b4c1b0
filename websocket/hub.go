package websocket

import (
	"sync"
)

// Hub is the session registry: it tracks which room each connection has
// joined. Rooms are named after user identifiers and exist only while at
// least one connection is joined to them.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	joined map[*Client]string
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		joined: make(map[*Client]string),
	}
}

// Join adds the connection to the room, moving it out of any previously
// joined room. A connection is a member of at most one room.
func (h *Hub) Join(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][c] = true
	h.joined[c] = roomID
}

// Leave removes the connection from its room on disconnect.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	roomID, ok := h.joined[c]
	if !ok {
		return
	}
	delete(h.joined, c)
	if members := h.rooms[roomID]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Broadcast delivers data to every connection in the room, skipping except
// when non-nil.
func (h *Hub) Broadcast(roomID string, data []byte, except *Client) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		if c != except {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.enqueue(data)
	}
}

// RoomSize reports the number of connections joined to the room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

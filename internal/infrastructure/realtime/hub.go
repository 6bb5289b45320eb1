package realtime

import (
	"sync"
)

// Hub tracks websocket connections and the conversation rooms they joined.
// One room exists per conversation id; a connection may sit in any number of
// rooms and a user may hold several connections at once.
//
// The hub only routes payloads. Whether a connection is allowed into a room
// is decided by the caller before Join.
type Hub struct {
	mu        sync.RWMutex
	conns     map[string]*Connection           // connection ID -> connection
	rooms     map[int64]map[string]*Connection // conversation ID -> connection ID -> connection
	connRooms map[string]map[int64]struct{}    // connection ID -> joined conversation IDs
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		conns:     make(map[string]*Connection),
		rooms:     make(map[int64]map[string]*Connection),
		connRooms: make(map[string]map[int64]struct{}),
	}
}

// Attach registers a connection with the hub. The caller is responsible for
// starting the connection's write loop afterwards.
func (h *Hub) Attach(conn *Connection) {
	h.mu.Lock()
	h.conns[conn.ID] = conn
	h.connRooms[conn.ID] = make(map[int64]struct{})
	h.mu.Unlock()
}

// Detach removes the connection from the hub and from every room it joined.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// Join adds an attached connection to the conversation's room. Joining a
// room twice is a no-op.
func (h *Hub) Join(conversationID int64, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn.ID]; !ok {
		return
	}

	room := h.rooms[conversationID]
	if room == nil {
		room = make(map[string]*Connection)
		h.rooms[conversationID] = room
	}
	room[conn.ID] = conn
	h.connRooms[conn.ID][conversationID] = struct{}{}
}

// Leave removes the connection from the conversation's room.
func (h *Hub) Leave(conversationID int64, conn *Connection) {
	h.mu.Lock()
	h.leaveLocked(conversationID, conn.ID)
	h.mu.Unlock()
}

// Broadcast delivers payload to every connection currently in the
// conversation's room, the sender's own connections included. Delivery is
// at-most-once: a send failure drops that connection's copy and nothing is
// queued for absent sockets. Returns the number of successful sends.
func (h *Hub) Broadcast(conversationID int64, payload []byte) int {
	h.mu.RLock()
	room := h.rooms[conversationID]
	members := make([]*Connection, 0, len(room))
	for _, conn := range room {
		members = append(members, conn)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, conn := range members {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates every tracked connection and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[string]*Connection)
	h.rooms = make(map[int64]map[string]*Connection)
	h.connRooms = make(map[string]map[int64]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(connID string) {
	if _, ok := h.conns[connID]; !ok {
		return
	}
	delete(h.conns, connID)
	for roomID := range h.connRooms[connID] {
		h.leaveLocked(roomID, connID)
	}
	delete(h.connRooms, connID)
}

func (h *Hub) leaveLocked(conversationID int64, connID string) {
	room := h.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
	if joined, ok := h.connRooms[connID]; ok {
		delete(joined, conversationID)
	}
}

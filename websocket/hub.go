package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub owns the connection registry and room subscriptions for the
// real-time layer. One client is tracked per user ID: registering a
// second connection for the same user replaces the first.
type Hub struct {
	// Connected clients keyed by user ID (last writer wins)
	clients    map[string]*Client
	clientsMux sync.RWMutex

	// Rooms mapping (roomID -> clients)
	rooms    map[string]map[*Client]bool
	roomsMux sync.RWMutex

	// Register requests from new connections
	register chan *Client

	// Unregister requests from closing connections
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMux.Lock()
			old := h.clients[client.userID]
			h.clients[client.userID] = client
			h.clientsMux.Unlock()

			if old != nil && old != client {
				// A newer connection for the same user replaces the
				// earlier one; evict it without an offline broadcast.
				h.removeFromAllRooms(old)
				old.closeSend()
			}

			h.broadcastPresence(EventUserOnline, client)
		case client := <-h.unregister:
			h.clientsMux.Lock()
			current := h.clients[client.userID] == client
			if current {
				delete(h.clients, client.userID)
			}
			h.clientsMux.Unlock()

			h.removeFromAllRooms(client)

			// A stale disconnect from a replaced connection must not
			// unregister the user or announce them offline.
			if current {
				client.closeSend()
				h.broadcastPresence(EventUserOffline, client)
			}
		}
	}
}

// IsOnline reports whether the user currently has a registered connection.
func (h *Hub) IsOnline(userID string) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// OnlineStatus returns a point-in-time online flag for each requested user.
func (h *Hub) OnlineStatus(userIDs []string) map[string]bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	statuses := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		_, ok := h.clients[id]
		statuses[id] = ok
	}
	return statuses
}

// OnlineUserIDs returns a snapshot of all connected user IDs.
func (h *Hub) OnlineUserIDs() []string {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// NotifyUser delivers an event to the user's private channel and reports
// whether they were connected to receive it.
func (h *Hub) NotifyUser(userID string, eventType string, payload interface{}) bool {
	data, err := marshalFrame(eventType, payload)
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return false
	}

	h.clientsMux.RLock()
	client, ok := h.clients[userID]
	h.clientsMux.RUnlock()

	if !ok {
		return false
	}
	client.enqueue(data)
	return true
}

// joinRoom adds a client to a room
func (h *Hub) joinRoom(client *Client, roomID string) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
}

// leaveRoom removes a client from a room
func (h *Hub) leaveRoom(client *Client, roomID string) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[roomID]; ok {
		delete(h.rooms[roomID], client)
		// Clean up empty rooms
		if len(h.rooms[roomID]) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// removeFromAllRooms drops every room subscription held by the client.
func (h *Hub) removeFromAllRooms(client *Client) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	for roomID, clients := range h.rooms {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// broadcastToRoom sends a message to all clients in a room except the
// originating connection.
func (h *Hub) broadcastToRoom(roomID string, message []byte, except *Client) {
	h.roomsMux.RLock()
	defer h.roomsMux.RUnlock()

	for client := range h.rooms[roomID] {
		if client == except {
			continue
		}
		client.enqueue(message)
	}
}

// broadcastPresence announces a connect or disconnect to every other client.
func (h *Hub) broadcastPresence(eventType string, origin *Client) {
	data, err := marshalFrame(eventType, map[string]interface{}{
		"user_id":   origin.userID,
		"user_name": origin.name,
	})
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}

	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	for id, client := range h.clients {
		if id == origin.userID {
			continue
		}
		client.enqueue(data)
	}
}

func marshalFrame(eventType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Frame{Type: eventType, Payload: payload})
}

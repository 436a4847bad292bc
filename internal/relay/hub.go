// Package relay carries chat and call-signaling traffic between the parties
// of an appointment. Rooms are explicit named sets keyed by the appointment
// id; a socket is fanned out to exactly the rooms it asked to join.
package relay

import "sync"

// Client represents a single connected socket.
type Client struct {
	ID   string
	Send chan []byte

	// rooms this client has joined; guarded by the hub mutex.
	rooms map[string]struct{}
}

// Hub tracks connected clients and room membership. All operations are
// thread-safe via sync.RWMutex.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{} // room -> set of clients
	all   map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
	}
}

// Register adds a freshly upgraded client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.rooms == nil {
		client.rooms = make(map[string]struct{})
	}
	h.all[client] = struct{}{}
}

// Unregister removes a client from every room and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	for room := range client.rooms {
		h.removeFromRoom(room, client)
	}

	delete(h.all, client)
	close(client.Send)
}

// Join adds the client to the named room.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	client.rooms[room] = struct{}{}
}

// Leave removes the client from the named room.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(room, client)
	delete(client.rooms, room)
}

// removeFromRoom must be called with the lock held.
func (h *Hub) removeFromRoom(room string, client *Client) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast sends data to every client in the room, sender included.
// Delivery is at-most-once: a client with a full buffer is skipped.
func (h *Hub) Broadcast(room string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.rooms[room] {
		select {
		case client.Send <- data:
			delivered++
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
	return delivered
}

// BroadcastExcept sends data to everyone in the room but the sender; used
// for call signaling, where the joiner addresses the rest of the room.
func (h *Hub) BroadcastExcept(room string, sender *Client, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.rooms[room] {
		if client == sender {
			continue
		}
		select {
		case client.Send <- data:
			delivered++
		default:
		}
	}
	return delivered
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients currently joined to a room.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.all {
		for room := range client.rooms {
			h.removeFromRoom(room, client)
		}
		delete(h.all, client)
		close(client.Send)
	}
}

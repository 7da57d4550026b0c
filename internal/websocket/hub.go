package websocket

import (
	"sync"
)

// Hub tracks connected clients and routes notification payloads to
// them. It satisfies the workflow notifier contract via Push.
type Hub struct {
	clients map[*Client]bool

	// Broadcast fans a message out to every connected client.
	Broadcast chan []byte

	// Register adds a new client.
	Register chan *Client

	// Unregister removes a client.
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run processes register, unregister and broadcast events. Call it in
// its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Push delivers a payload to every connection owned by a user. Users
// without an open connection simply miss the push; the notification
// row remains for them to fetch.
func (h *Hub) Push(userID string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Send <- payload:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

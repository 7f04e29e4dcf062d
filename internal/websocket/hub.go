package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// PostEvent carries a payload to every client watching a post.
type PostEvent struct {
	PostID  uuid.UUID
	Payload []byte
}

// Hub maintains the set of active clients and fans comment events out to the
// clients watching the relevant post.
type Hub struct {
	// Registered clients. Maps post ID to the set of active connections
	// watching that post.
	Clients map[uuid.UUID]map[*Client]bool

	// Channel for publishing events to a post's watchers.
	Events chan *PostEvent

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Events:     make(chan *PostEvent, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[uuid.UUID]map[*Client]bool),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.Clients[client.PostID]; !ok {
				h.Clients[client.PostID] = make(map[*Client]bool)
			}
			h.Clients[client.PostID][client] = true
			log.Printf("WebSocket client registered for post %s. Watchers: %d", client.PostID, len(h.Clients[client.PostID]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if postClients, ok := h.Clients[client.PostID]; ok {
				if _, clientOk := postClients[client]; clientOk {
					delete(postClients, client)
					close(client.Send)
					if len(postClients) == 0 {
						delete(h.Clients, client.PostID)
					}
					log.Printf("WebSocket client unregistered for post %s", client.PostID)
				}
			}
			h.mu.Unlock()

		case event := <-h.Events:
			h.mu.RLock()
			for client := range h.Clients[event.PostID] {
				select {
				case client.Send <- event.Payload:
				default:
					// Watcher too slow; drop the event for this client.
					log.Printf("WebSocket client for post %s not keeping up, dropping event", event.PostID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastComment publishes a payload to every watcher of the post. Safe to
// call from any goroutine; never blocks the caller.
func (h *Hub) BroadcastComment(postID uuid.UUID, payload []byte) {
	select {
	case h.Events <- &PostEvent{PostID: postID, Payload: payload}:
	default:
		log.Printf("WebSocket hub event queue full, dropping event for post %s", postID)
	}
}

package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans events out to every connected staff client. Delivery is
// at-most-once: there is no queue for disconnected subscribers and a
// client that cannot keep up is dropped.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Event is the wire envelope. Data is whatever JSON-serializable payload
// the emitting service passed in; the hub has no knowledge of entity
// schemas.
type Event struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.sendToAll(message)
		}
	}
}

// Publish broadcasts an event to all connected clients. Fire-and-forget:
// it never blocks the caller and never returns an error, so a mutation
// can never fail because of a notification.
func (h *Hub) Publish(event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:      event,
		Timestamp: time.Now().Unix(),
		Data:      payload,
	})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// Broadcast buffer full; drop rather than delay the mutation.
		log.Printf("Dropping %s event: broadcast buffer full", event)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	log.Printf("Client registered: %s", client.UserID)

	welcome, _ := json.Marshal(Event{
		Type:      "welcome",
		Timestamp: time.Now().Unix(),
		Data:      map[string]interface{}{"message": "Connected successfully"},
	})
	select {
	case client.send <- welcome:
	default:
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("Client unregistered: %s", client.UserID)
	}
}

func (h *Hub) sendToAll(message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

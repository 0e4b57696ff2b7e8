package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans chat events out to connected participants. Delivery is
// best-effort: the persisted thread records remain the source of truth and
// a client that misses an event re-reads its thread list.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"room_id,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
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
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	log.Printf("Client registered: %s", client.UserID)

	// Each user has a personal room; chat events are addressed to it.
	h.joinRoom(client, "user_"+client.UserID)

	welcome := Message{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}
	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		h.dropClientLocked(client)
		log.Printf("Client unregistered: %s", client.UserID)
	}
}

// dropClientLocked removes a client and closes its send channel. The caller
// must hold the write lock; the clients-map membership check keeps two
// concurrent drops from closing the channel twice.
func (h *Hub) dropClientLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	for roomID, room := range h.rooms {
		if _, exists := room[client]; exists {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	if msg.RoomID != "" {
		h.sendToRoom(msg.RoomID, msg)
	}
}

// sendToRoom runs under the write lock: dropping a client whose buffer is
// full mutates the client and room maps, and SendToUser is called from
// concurrent request goroutines.
func (h *Hub) sendToRoom(roomID string, message Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	data, _ := json.Marshal(message)
	for client := range room {
		select {
		case client.send <- data:
		default:
			h.dropClientLocked(client)
		}
	}
}

// sendToClient requires the write lock to be held.
func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	select {
	case client.send <- data:
	default:
		h.dropClientLocked(client)
	}
}

// SendToUser delivers a message to every connection the user has open.
func (h *Hub) SendToUser(userID string, message Message) {
	h.sendToRoom("user_"+userID, message)
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}

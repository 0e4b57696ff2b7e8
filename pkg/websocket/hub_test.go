package websocket

import (
	"sync"
	"testing"
)

func testClient(h *Hub, userID string, buffer int) *Client {
	client := &Client{
		hub:    h,
		send:   make(chan []byte, buffer),
		UserID: userID,
		rooms:  make(map[string]bool),
	}
	h.mutex.Lock()
	h.clients[client] = true
	h.joinRoom(client, "user_"+userID)
	h.mutex.Unlock()
	return client
}

func TestSendToUserDeliversToPersonalRoom(t *testing.T) {
	h := NewHub()
	client := testClient(h, "anna", 4)

	h.SendToUser("anna", Message{Type: "chat_message"})

	select {
	case <-client.send:
	default:
		t.Fatal("expected a message in the client's send buffer")
	}
}

func TestConcurrentSendsToSlowClientDropItOnce(t *testing.T) {
	h := NewHub()
	client := testClient(h, "anna", 1)

	// Fill the buffer so every further send takes the drop path. A panic
	// here would mean the channel was closed twice or the maps were
	// written without the lock.
	client.send <- []byte("{}")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.SendToUser("anna", Message{Type: "chat_message"})
			}
		}()
	}
	wg.Wait()

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if _, ok := h.clients[client]; ok {
		t.Error("slow client should have been dropped from the hub")
	}
	if _, ok := h.rooms["user_anna"]; ok {
		t.Error("empty personal room should have been removed")
	}
}

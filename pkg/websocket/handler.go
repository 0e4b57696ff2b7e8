package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{hub: hub}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userIDStr)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// SendUserNotification pushes a chat event to one participant.
func (h *Handler) SendUserNotification(userID string, notificationType string, data map[string]interface{}) {
	message := Message{
		Type:      notificationType,
		RoomID:    "user_" + userID,
		UserID:    userID,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendToUser(userID, message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}

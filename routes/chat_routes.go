package routes

import (
	"jamride/internal/handlers"
	"jamride/internal/middleware"
	"jamride/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes sets up routes for conversations and live delivery
func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler, wsHandler *websocket.Handler, jwtSecret string) {
	chats := r.Group("/chats")
	chats.Use(middleware.AuthRequired(jwtSecret))
	{
		chats.POST("/", chatHandler.RequestToJoin)
		chats.GET("/", chatHandler.ListThreads)
		chats.GET("/:id", chatHandler.GetThread)
		chats.POST("/:id/messages", chatHandler.SendMessage)
		chats.POST("/:id/respond", chatHandler.RespondToRequest)
		chats.PUT("/:id/read", chatHandler.MarkRead)
		chats.DELETE("/:id", chatHandler.DeleteThread)
	}

	ws := r.Group("/ws")
	ws.Use(middleware.AuthRequired(jwtSecret))
	{
		ws.GET("/", wsHandler.HandleWebSocket)
	}
}

package routes

import (
	"jamride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes sets up routes for concert discovery
func SetupEventRoutes(r *gin.RouterGroup, eventHandler *handlers.EventHandler) {
	events := r.Group("/events")
	{
		events.GET("/search", eventHandler.SearchConcerts)
		events.GET("/:id", eventHandler.GetConcert)
	}
}

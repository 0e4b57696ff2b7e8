package routes

import (
	"jamride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/:provider", authHandler.SocialAuthURL)
		auth.GET("/:provider/callback", authHandler.SocialCallback)
	}
}

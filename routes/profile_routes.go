package routes

import (
	"jamride/internal/handlers"
	"jamride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupProfileRoutes sets up routes for the authenticated user's profile
func SetupProfileRoutes(r *gin.RouterGroup, profileHandler *handlers.ProfileHandler, jwtSecret string) {
	profile := r.Group("/profile")
	profile.Use(middleware.AuthRequired(jwtSecret))
	{
		profile.GET("/", profileHandler.GetProfile)
		profile.POST("/avatar", profileHandler.UploadAvatar)
	}
}

package routes

import (
	"jamride/internal/handlers"
	"jamride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes sets up routes for ride listings
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, jwtSecret string) {
	rides := r.Group("/rides")
	{
		// Browsing the board is public; publishing and withdrawing are not.
		rides.GET("/", rideHandler.ListRides)
		rides.GET("/:id", rideHandler.GetRide)
		rides.GET("/estimate", rideHandler.EstimateRoute)
	}

	authed := r.Group("/rides")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.POST("/", rideHandler.CreateRide)
		authed.GET("/mine", rideHandler.ListMyRides)
		authed.DELETE("/:id", rideHandler.DeleteRide)
	}
}

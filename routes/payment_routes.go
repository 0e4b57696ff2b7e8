package routes

import (
	"jamride/internal/handlers"
	"jamride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes sets up routes for checkout
func SetupPaymentRoutes(r *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, jwtSecret string) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthRequired(jwtSecret))
	{
		payments.POST("/checkout", paymentHandler.CreateCheckout)
	}
}

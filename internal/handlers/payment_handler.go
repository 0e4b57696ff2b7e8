package handlers

import (
	"errors"
	"net/http"

	"jamride/internal/middleware"
	"jamride/internal/repositories/interfaces"
	"jamride/internal/services"
	"jamride/internal/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

type checkoutRequest struct {
	ThreadID string `json:"thread_id" binding:"required"`
}

// CreateCheckout opens a hosted payment page for an accepted join request
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var request checkoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	response, err := h.paymentService.CreateCheckout(c.Request.Context(), user, request.ThreadID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrThreadNotFound):
			utils.NotFoundResponse(c, "Conversation")
		case errors.Is(err, services.ErrRequestNotAccepted):
			utils.BadRequestResponse(c, "The join request has not been accepted yet")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Failed to create checkout session: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Checkout session created", response)
}

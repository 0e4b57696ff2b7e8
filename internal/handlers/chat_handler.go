package handlers

import (
	"errors"
	"net/http"

	"jamride/internal/middleware"
	"jamride/internal/repositories/interfaces"
	"jamride/internal/services"
	"jamride/internal/utils"
	"jamride/internal/validators"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

type joinRequest struct {
	RideID string `json:"ride_id" binding:"required"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type respondRequest struct {
	Accepted bool `json:"accepted"`
}

// RequestToJoin opens a conversation with a ride's driver
func (h *ChatHandler) RequestToJoin(c *gin.Context) {
	var request joinRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	thread, err := h.chatService.RequestToJoin(c.Request.Context(), user, request.RideID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRideNotFound):
			utils.NotFoundResponse(c, "Ride")
		case errors.Is(err, services.ErrOwnRide):
			utils.BadRequestResponse(c, "You cannot request a seat on your own ride")
		case errors.Is(err, interfaces.ErrThreadExists):
			utils.ConflictResponse(c, "You already have a conversation for this ride")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_START_FAILED", "Failed to start conversation: "+err.Error())
		}
		return
	}

	utils.CreatedResponse(c, "Join request sent", thread)
}

// ListThreads returns the authenticated user's conversations
func (h *ChatHandler) ListThreads(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	threads, err := h.chatService.ListThreads(c.Request.Context(), user.ID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_LIST_FAILED", "Failed to list conversations: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Conversations retrieved successfully", threads, &utils.Meta{Count: len(threads)})
}

// GetThread returns one of the authenticated user's conversations
func (h *ChatHandler) GetThread(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	thread, err := h.chatService.GetThread(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, interfaces.ErrThreadNotFound) {
			utils.NotFoundResponse(c, "Conversation")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_FETCH_FAILED", "Failed to get conversation: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Conversation retrieved successfully", thread)
}

// SendMessage appends a message to both sides of a conversation
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var request messageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateMessageText(request.Text); errs != nil {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	thread, err := h.chatService.SendMessage(c.Request.Context(), user, c.Param("id"), request.Text)
	if err != nil {
		if errors.Is(err, interfaces.ErrThreadNotFound) {
			utils.NotFoundResponse(c, "Conversation")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_SEND_FAILED", "Failed to send message: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Message sent", thread)
}

// RespondToRequest accepts or rejects the pending join request
func (h *ChatHandler) RespondToRequest(c *gin.Context) {
	var request respondRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	thread, err := h.chatService.RespondToRequest(c.Request.Context(), user, c.Param("id"), request.Accepted)
	if err != nil {
		if errors.Is(err, interfaces.ErrThreadNotFound) {
			utils.NotFoundResponse(c, "Conversation")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_RESPOND_FAILED", "Failed to respond to request: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Request resolved", thread)
}

// DeleteThread removes the authenticated user's copy of a conversation
func (h *ChatHandler) DeleteThread(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.chatService.DeleteThread(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, interfaces.ErrThreadNotFound) {
			utils.NotFoundResponse(c, "Conversation")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_DELETE_FAILED", "Failed to delete conversation: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Conversation deleted", nil)
}

// MarkRead clears the unread counter on a conversation
func (h *ChatHandler) MarkRead(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, interfaces.ErrThreadNotFound) {
			utils.NotFoundResponse(c, "Conversation")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHAT_READ_FAILED", "Failed to mark conversation read: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Conversation marked read", nil)
}

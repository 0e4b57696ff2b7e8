package handlers

import (
	"net/http"

	"jamride/internal/services"
	"jamride/internal/utils"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// SearchConcerts looks up upcoming concerts by keyword. Short keywords and
// upstream failures both return an empty list.
func (h *EventHandler) SearchConcerts(c *gin.Context) {
	concerts, err := h.eventService.SearchConcerts(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "EVENT_SEARCH_FAILED", "Failed to search concerts: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Concerts retrieved successfully", concerts, &utils.Meta{Count: len(concerts)})
}

// GetConcert fetches one concert by its provider id
func (h *EventHandler) GetConcert(c *gin.Context) {
	concert, err := h.eventService.GetConcert(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "EVENT_FETCH_FAILED", "Failed to get concert: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Concert retrieved successfully", concert)
}

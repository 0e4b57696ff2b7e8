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

type RideHandler struct {
	rideService services.RideService
}

func NewRideHandler(rideService services.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
	}
}

// CreateRide publishes a new ride listing for the authenticated driver
func (h *RideHandler) CreateRide(c *gin.Context) {
	var request services.CreateRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateRide(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	driver, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), driver, &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_CREATE_FAILED", "Failed to create ride: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Ride published successfully", ride)
}

// ListRides returns all active listings, optionally filtered by ?search=
func (h *RideHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_LIST_FAILED", "Failed to list rides: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", rides, &utils.Meta{Count: len(rides)})
}

// ListMyRides returns the authenticated user's active listings
func (h *RideHandler) ListMyRides(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rides, err := h.rideService.ListMyRides(c.Request.Context(), user.ID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_LIST_FAILED", "Failed to list rides: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", rides, &utils.Meta{Count: len(rides)})
}

// GetRide returns one active listing by id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRideNotFound) {
			utils.NotFoundResponse(c, "Ride")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_FETCH_FAILED", "Failed to get ride: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Ride retrieved successfully", ride)
}

// DeleteRide withdraws one of the authenticated user's listings
func (h *RideHandler) DeleteRide(c *gin.Context) {
	user, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.rideService.DeleteRide(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		if errors.Is(err, interfaces.ErrNotRideOwner) {
			utils.ForbiddenResponse(c)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_DELETE_FAILED", "Failed to delete ride: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Ride deleted successfully", nil)
}

// EstimateRoute quotes distance and price for a city pair without
// creating anything
func (h *RideHandler) EstimateRoute(c *gin.Context) {
	departure := c.Query("from")
	destination := c.Query("to")
	if departure == "" || destination == "" {
		utils.BadRequestResponse(c, "Query parameters 'from' and 'to' are required")
		return
	}

	estimate, err := h.rideService.EstimateRoute(c.Request.Context(), departure, destination)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "ROUTE_ESTIMATE_FAILED", "Failed to estimate route: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Route estimated successfully", estimate)
}

package handlers

import (
	"strconv"

	"gocarpool/internal/models"
	"gocarpool/internal/services"
	"gocarpool/internal/utils"
	"gocarpool/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	rideService services.RideService
	ws          *websocket.Handler
}

func NewRideHandler(rideService services.RideService, ws *websocket.Handler) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		ws:          ws,
	}
}

// CreateRide creates a ride with the caller as driver.
func (h *RideHandler) CreateRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request services.CreateRideRequest
	if !bindAndValidate(c, &request) {
		return
	}

	ride, err := h.rideService.Create(c.Request.Context(), userID, &request)
	if err != nil {
		respondRideError(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride created successfully", ride)
}

// ListRides returns active rides matching the query filters, paginated.
func (h *RideHandler) ListRides(c *gin.Context) {
	filter := &models.RideFilter{
		Destination:      c.Query("destination"),
		GenderPreference: models.GenderPreference(c.Query("gender_preference")),
	}

	if raw := c.Query("date"); raw != "" {
		date, err := services.ParseRideDate(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid date filter")
			return
		}
		filter.Date = &date
	}

	if raw := c.Query("max_cost"); raw != "" {
		maxCost, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxCost < 0 {
			utils.BadRequestResponse(c, "Invalid max_cost filter")
			return
		}
		filter.MaxCost = &maxCost
	}

	pagination := utils.GetPaginationParams(c)

	rides, total, err := h.rideService.List(c.Request.Context(), filter, pagination)
	if err != nil {
		respondRideError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(pagination, total)}
	utils.SuccessResponseWithMeta(c, "Rides retrieved", rides, meta)
}

// GetRide returns one ride with driver and passengers expanded.
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ride, err := h.rideService.Get(c.Request.Context(), rideID)
	if err != nil {
		respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride retrieved", ride)
}

// JoinRide claims a seat for the caller.
func (h *RideHandler) JoinRide(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rideID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ride, err := h.rideService.Join(c.Request.Context(), rideID, user)
	if err != nil {
		respondRideError(c, err)
		return
	}

	if h.ws != nil {
		h.ws.NotifyRide(rideID, "passenger_joined", map[string]interface{}{
			"user_id":         user.ID.Hex(),
			"name":            user.Name,
			"available_seats": ride.AvailableSeats,
		})
	}

	utils.SuccessResponse(c, "Joined ride successfully", ride)
}

// LeaveRide releases the caller's seat. Safe to call when not aboard.
func (h *RideHandler) LeaveRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rideID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ride, err := h.rideService.Leave(c.Request.Context(), rideID, userID)
	if err != nil {
		respondRideError(c, err)
		return
	}

	if h.ws != nil {
		h.ws.NotifyRide(rideID, "passenger_left", map[string]interface{}{
			"user_id":         userID.Hex(),
			"available_seats": ride.AvailableSeats,
		})
	}

	utils.SuccessResponse(c, "Left ride successfully", ride)
}

// UpdateRide applies driver edits to a ride.
func (h *RideHandler) UpdateRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rideID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request services.UpdateRideRequest
	if !bindAndValidate(c, &request) {
		return
	}

	ride, err := h.rideService.Update(c.Request.Context(), rideID, userID, &request)
	if err != nil {
		respondRideError(c, err)
		return
	}

	if h.ws != nil {
		h.ws.NotifyRide(rideID, "ride_updated", map[string]interface{}{
			"status": ride.Status,
		})
	}

	utils.SuccessResponse(c, "Ride updated successfully", ride)
}

// DeleteRide removes a ride along with its chat history.
func (h *RideHandler) DeleteRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rideID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.Delete(c.Request.Context(), rideID, userID); err != nil {
		respondRideError(c, err)
		return
	}

	if h.ws != nil {
		h.ws.NotifyRide(rideID, "ride_deleted", nil)
	}

	utils.SuccessResponse(c, "Ride deleted successfully", nil)
}

// ListCreatedRides returns rides where the caller is the driver.
func (h *RideHandler) ListCreatedRides(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rides, err := h.rideService.ListCreated(c.Request.Context(), userID)
	if err != nil {
		respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Created rides retrieved", rides)
}

// ListJoinedRides returns rides where the caller holds a seat.
func (h *RideHandler) ListJoinedRides(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rides, err := h.rideService.ListJoined(c.Request.Context(), userID)
	if err != nil {
		respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Joined rides retrieved", rides)
}

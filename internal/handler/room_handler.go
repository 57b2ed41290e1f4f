package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/suitespot/service-booking/internal/application"
	"github.com/suitespot/service-booking/internal/pkg/response"
)

// RoomHandler handles HTTP requests for browsing rooms.
type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RegisterRoutes registers the public room routes.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/rooms", h.ListRooms)
	r.GET("/featured-rooms", h.FeaturedRooms)
	r.GET("/rooms/:id", h.GetRoom)
	r.GET("/all-rooms", h.FilterRooms)
}

// ListRooms handles GET /rooms. ?bookings=true adds the booked date ranges.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	withBookings, _ := strconv.ParseBool(c.DefaultQuery("bookings", "false"))

	result, err := h.service.ListRooms(c.Request.Context(), withBookings)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FeaturedRooms handles GET /featured-rooms.
func (h *RoomHandler) FeaturedRooms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(application.DefaultFeaturedRooms)))

	result, err := h.service.GetFeaturedRooms(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRoom handles GET /rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	result, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FilterRooms handles GET /all-rooms?filter=asc|dsc&offer=true&fromDate=&toDate=.
func (h *RoomHandler) FilterRooms(c *gin.Context) {
	var q application.RoomFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.FilterRooms(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

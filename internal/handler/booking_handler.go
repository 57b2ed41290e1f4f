package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/suitespot/service-booking/internal/application"
	"github.com/suitespot/service-booking/internal/pkg/auth"
	"github.com/suitespot/service-booking/internal/pkg/middleware"
	"github.com/suitespot/service-booking/internal/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
// Creating a booking is open; every other booking route needs a session.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/add-booking", h.CreateBooking)
	r.GET("/bookings/:email", authMW, middleware.RequireSelf("email"), h.GuestBookings)
	r.DELETE("/booking/:id", authMW, h.CancelBooking)
	r.PUT("/update-date", authMW, h.UpdateDates)
}

// CreateBooking handles POST /add-booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GuestBookings handles GET /bookings/:email.
func (h *BookingHandler) GuestBookings(c *gin.Context) {
	result, err := h.service.GetGuestBookings(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles DELETE /booking/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	email, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "unauthorized access")
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), bookingID, email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateDates handles PUT /update-date.
func (h *BookingHandler) UpdateDates(c *gin.Context) {
	email, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "unauthorized access")
		return
	}

	var req application.UpdateDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateDates(c.Request.Context(), email, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suitespot/service-booking/internal/application"
	"github.com/suitespot/service-booking/internal/pkg/auth"
	"github.com/suitespot/service-booking/internal/pkg/middleware"
	"github.com/suitespot/service-booking/internal/pkg/response"
)

// ReviewHandler handles HTTP requests for room reviews.
type ReviewHandler struct {
	service *application.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers review routes. Posting requires a session.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.POST("/reviews", middleware.AuthMiddleware(jwtManager), h.SubmitReview)
	r.GET("/reviewDatas/:roomNo", h.RoomReviews)
	r.GET("/top-reviews", h.TopReviews)
}

// SubmitReview handles POST /reviews.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	email, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "unauthorized access")
		return
	}

	var req application.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SubmitReview(c.Request.Context(), email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// RoomReviews handles GET /reviewDatas/:roomNo.
func (h *ReviewHandler) RoomReviews(c *gin.Context) {
	result, err := h.service.GetRoomReviews(c.Request.Context(), c.Param("roomNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// TopReviews handles GET /top-reviews.
func (h *ReviewHandler) TopReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(application.DefaultTopReviews)))

	result, err := h.service.GetTopReviews(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

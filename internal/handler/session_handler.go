package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/suitespot/service-booking/internal/pkg/auth"
	"github.com/suitespot/service-booking/internal/pkg/response"
)

// IssueTokenRequest names the guest a session is issued for.
type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SessionHandler issues and clears guest session cookies.
type SessionHandler struct {
	jwtManager *auth.JWTManager
	secure     bool
}

// NewSessionHandler creates a new SessionHandler. secure selects the
// production cookie attributes.
func NewSessionHandler(jwtManager *auth.JWTManager, secure bool) *SessionHandler {
	return &SessionHandler{jwtManager: jwtManager, secure: secure}
}

// RegisterRoutes registers the session routes.
func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/jwt", h.IssueToken)
	r.GET("/logout", h.Logout)
}

// IssueToken handles POST /jwt.
func (h *SessionHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	auth.SetSessionCookie(c, token, auth.CookieOptions{
		Secure: h.secure,
		MaxAge: int(h.jwtManager.TTL().Seconds()),
	})
	response.Success(c, gin.H{"email": auth.NormalizeEmail(req.Email)})
}

// Logout handles GET /logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, auth.CookieOptions{Secure: h.secure})
	response.Success(c, nil)
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suitespot/service-booking/internal/pkg/auth"
	"github.com/suitespot/service-booking/internal/pkg/response"
)

const identityKey = "guest_email"

// AuthMiddleware resolves the session token (cookie first, then a Bearer
// header) into the caller's identity. Requests without a valid token stop here.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "unauthorized access")
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "unauthorized access")
			return
		}

		c.Set(identityKey, claims.Email)
		c.Next()
	}
}

// RequireSelf rejects callers whose identity differs from the given path parameter.
// It must run after AuthMiddleware.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetIdentity(c)
		if !ok {
			response.Unauthorized(c, "unauthorized access")
			return
		}
		if auth.NormalizeEmail(c.Param(param)) != email {
			response.Forbidden(c, "forbidden access")
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated guest email set by AuthMiddleware.
func GetIdentity(c *gin.Context) (string, bool) {
	email := c.GetString(identityKey)
	return email, email != ""
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

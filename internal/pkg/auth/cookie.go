// Package auth issues guest session tokens and carries them in cookies.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie holding the session token.
const CookieName = "token"

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	// Secure switches to Secure + SameSite=None, used behind HTTPS in production.
	Secure bool
	MaxAge int
}

// SetSessionCookie writes the HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, token string, opts CookieOptions) {
	c.SetSameSite(sameSite(opts.Secure))
	c.SetCookie(CookieName, token, opts.MaxAge, "/", "", opts.Secure, true)
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(sameSite(opts.Secure))
	c.SetCookie(CookieName, "", -1, "/", "", opts.Secure, true)
}

func sameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader = "X-Session-Id"
	SessionCookie = "ats_session"
)

// SessionID identifies the submitting browser session.
// Precedence is the X-Session-Id header, then the ats_session cookie, then the client IP.
func SessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && strings.TrimSpace(cookie) != "" {
		return cookie
	}
	return "ip:" + c.ClientIP()
}

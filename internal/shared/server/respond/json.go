package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 JSON payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Private writes a 200 JSON payload that proxies and browsers must not store.
// Analysis results are derived from the caller's resume.
func Private(c *gin.Context, payload any) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	OK(c, payload)
}

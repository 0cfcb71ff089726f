package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/shared/server/respond"
	"ats-analyzer/internal/shared/telemetry"
)

const panicMessage = "Unexpected server error"

// Recovery turns a handler panic into a 500. Browser form posts get a
// plain "Error: ..." body, API callers the standard JSON error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			})
			if wantsHTML(c) {
				respond.LogError(c, http.StatusInternalServerError, "internal_error", panicMessage)
				c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Error: "+panicMessage))
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", panicMessage, nil)
		}()
		c.Next()
	}
}

func wantsHTML(c *gin.Context) bool {
	return !strings.HasPrefix(c.Request.URL.Path, "/api/") &&
		strings.Contains(c.GetHeader("Accept"), "text/html")
}

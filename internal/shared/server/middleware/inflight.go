package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/shared/server/respond"
	"ats-analyzer/internal/shared/telemetry"
)

const ErrorCodeInProgress = "analysis_in_progress"

// InFlight tracks keys that currently have a request running.
type InFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{active: make(map[string]struct{})}
}

// Acquire claims key; it reports false when key is already held.
func (f *InFlight) Acquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.active[key]; busy {
		return false
	}
	f.active[key] = struct{}{}
	return true
}

func (f *InFlight) Release(key string) {
	f.mu.Lock()
	delete(f.active, key)
	f.mu.Unlock()
}

// SingleFlight rejects a request while another one with the same key is running.
// onBusy renders the rejection; nil writes a 409 JSON error.
func SingleFlight(f *InFlight, key func(*gin.Context) string, onBusy gin.HandlerFunc) gin.HandlerFunc {
	if f == nil {
		f = NewInFlight()
	}
	if key == nil {
		key = SessionID
	}
	return func(c *gin.Context) {
		k := key(c)
		if !f.Acquire(k) {
			telemetry.Warn("request.in_flight", map[string]any{
				"request_id": RequestIDFromContext(c),
				"path":       c.Request.URL.Path,
			})
			if onBusy != nil {
				onBusy(c)
				c.Abort()
				return
			}
			respond.Error(c, http.StatusConflict, ErrorCodeInProgress, "An analysis is already running for this session.", nil)
			return
		}
		defer f.Release(k)
		c.Next()
	}
}

// Package handlers — shared handler wiring. Handlers is the dependency
// container the router injects into every endpoint; all fields are
// interfaces or service structs constructed in the router.
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/intellinotes/go-notes-backend/internal/repo"
	"github.com/intellinotes/go-notes-backend/internal/services"
)

// Handlers bundles the application services behind the HTTP endpoints.
type Handlers struct {
	sumSvc  *services.SummaryService
	fbSvc   *services.FeedbackService
	tmplSvc *services.TemplateService

	// gateway is used directly only for idempotency bookkeeping; the
	// domain operations always go through the services.
	gateway *repo.Gateway

	// idempotencyTTL bounds how long a recorded Idempotency-Key may be
	// replayed.
	idempotencyTTL time.Duration
}

// New constructs the handler set.
func New(sumSvc *services.SummaryService, fbSvc *services.FeedbackService, tmplSvc *services.TemplateService, gw *repo.Gateway, idemTTL time.Duration) *Handlers {
	return &Handlers{
		sumSvc:         sumSvc,
		fbSvc:          fbSvc,
		tmplSvc:        tmplSvc,
		gateway:        gw,
		idempotencyTTL: idemTTL,
	}
}

// timeNow is a test seam for idempotency expiry checks.
var timeNow = func() time.Time { return time.Now().UTC() }

// userID resolves the caller identity: context (set by auth middleware when
// present) → X-User-ID header → demo fallback. The product currently runs
// without authentication, so the header is the normal path.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

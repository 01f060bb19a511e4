package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks one backing service; nil means healthy.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks       map[string]Pinger
	shuttingDown func() bool
}

// NewHealthHandler takes the named dependencies /readyz should ping.
// shuttingDown may be nil.
func NewHealthHandler(checks map[string]Pinger, shuttingDown func() bool) *HealthHandler {
	return &HealthHandler{checks: checks, shuttingDown: shuttingDown}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports 503 when a dependency is down. The public pages keep working
// on fallback data regardless; this is for operators and load balancers.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.shuttingDown != nil && h.shuttingDown() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}

	for name, ping := range h.checks {
		if ping == nil {
			continue
		}

		if err := ping(cctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = "unavailable"
			continue
		}

		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "degraded"
	}

	ctx.JSON(status, gin.H{"status": state, "checks": results})
}

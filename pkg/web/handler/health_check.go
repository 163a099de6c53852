package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthCheckHandler struct {
	db Pinger
}

func NewHealthCheckHandler(db Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Uptime     string            `json:"uptime"`
	Components []ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Name    string        `json:"name"`
	Status  string        `json:"status"`
	IsCore  bool          `json:"is_core"`
	Latency time.Duration `json:"latency,omitempty"`
	Error   string        `json:"error,omitempty"`
}

var startupTime = time.Now()

// AdvancedHealthCheck GET /health
func (h *HealthCheckHandler) AdvancedHealthCheck(ctx context.Context, c *app.RequestContext) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startupTime).Round(time.Second).String(),
		Components: []ComponentStatus{
			h.checkDatabase(ctx),
		},
	}

	if hasCriticalErrors(status.Components) {
		status.Status = "degraded"
		c.JSON(consts.StatusServiceUnavailable, status)
		return
	}

	c.JSON(consts.StatusOK, status)
}

func (h *HealthCheckHandler) checkDatabase(ctx context.Context) ComponentStatus {
	comp := ComponentStatus{Name: "database", IsCore: true}
	if h.db == nil {
		comp.IsCore = false
		comp.Status = "unconfigured"
		return comp
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	comp.Latency = time.Since(start)
	if err != nil {
		comp.Status = "down"
		comp.Error = err.Error()
		return comp
	}
	comp.Status = "ok"
	return comp
}

func hasCriticalErrors(components []ComponentStatus) bool {
	for _, comp := range components {
		// a core component that is not ok, or any component reporting critical
		if (comp.IsCore && comp.Status != "ok") || comp.Status == "critical" {
			return true
		}
	}
	return false
}

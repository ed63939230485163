package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is the API version reported by /system/info
const Version = "1.0.0"

// Pinger checks a backing store
type Pinger interface {
	Ping() error
}

// TaskBacklog reports queued background tasks
type TaskBacklog interface {
	Pending() int
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	db        Pinger
	tasks     TaskBacklog
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name string, db Pinger, tasks TaskBacklog) *SystemHandler {
	return &SystemHandler{
		name:      name,
		db:        db,
		tasks:     tasks,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
	Uptime       string `json:"uptime"`
	PendingTasks int    `json:"pending_tasks"`
}

// GetSystemInfo returns version, uptime and the background task backlog
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.tasks != nil {
		info.PendingTasks = h.tasks.Pending()
	}
	h.Success(c, info)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database"`
}

// Health is served outside the API envelope. It answers 503 when the
// database does not respond.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Database: "ok",
	}
	if err := h.db.Ping(); err != nil {
		logger.L(c.Request.Context()).Warn("health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

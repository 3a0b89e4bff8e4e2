package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/fiscalmanager/backend/internal/infrastructure/logger"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence"
	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIBanner is returned by the root endpoint
const APIBanner = "FiscalManager Total API - v1.0"

// healthCheckTimeout bounds the database ping of /health
const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency /health checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// poolReporter is implemented by databases that expose pool statistics
type poolReporter interface {
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string     `json:"status" example:"ok"`
	Database  string     `json:"database" example:"ok"`
	Pool      *PoolStats `json:"pool,omitempty"`
	Version   string     `json:"version" example:"1.0.0"`
	GoVersion string     `json:"go_version" example:"go1.25.5"`
	Uptime    string     `json:"uptime" example:"1h30m45s"`
}

// PoolStats is the database connection pool as seen by /health
type PoolStats struct {
	MaxOpen      int    `json:"max_open" example:"25"`
	Open         int    `json:"open" example:"3"`
	InUse        int    `json:"in_use" example:"1"`
	Idle         int    `json:"idle" example:"2"`
	WaitCount    int64  `json:"wait_count" example:"0"`
	WaitDuration string `json:"wait_duration" example:"0s"`
}

// Root godoc
//
//	@ID				getRoot
//	@Summary		API banner
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	dto.MessageResponse
//	@Router			/ [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: APIBanner})
}

// Health godoc
//
//	@ID				getHealth
//	@Summary		Health check
//	@Description	Reports 503 when the database does not answer
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}
	resp.Pool = h.poolStats(c)

	c.JSON(status, resp)
}

func (h *SystemHandler) poolStats(c *gin.Context) *PoolStats {
	reporter, ok := h.db.(poolReporter)
	if !ok {
		return nil
	}
	stats, err := reporter.Stats()
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("Pool stats unavailable", zap.Error(err))
		return nil
	}
	return &PoolStats{
		MaxOpen:      stats.MaxOpenConnections,
		Open:         stats.OpenConnections,
		InUse:        stats.InUse,
		Idle:         stats.Idle,
		WaitCount:    stats.WaitCount,
		WaitDuration: stats.WaitDuration.String(),
	}
}

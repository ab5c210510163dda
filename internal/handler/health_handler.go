package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"reviewhub/internal/cache"
	"reviewhub/internal/db"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db      *gorm.DB
	cache   *cache.Client
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gormDB *gorm.DB, cache *cache.Client) *HealthHandler {
	return &HealthHandler{db: gormDB, cache: cache, started: time.Now()}
}

// HealthResponse is the probe payload.
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.started).Round(time.Second).String(),
	})
}

// Readyz godoc
// @Summary Readiness probe
// @Description Checks the database and the cache.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{"database": "ok", "cache": "ok"}}
	if err := db.Ping(ctx, h.db); err != nil {
		resp.Status = "unavailable"
		resp.Checks["database"] = err.Error()
	}
	if err := h.cache.Ping(ctx); err != nil {
		resp.Status = "unavailable"
		resp.Checks["cache"] = err.Error()
	}

	if resp.Status != "ok" {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

package handler

import (
	"context"
	"time"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	healthCheckTimeout = 2 * time.Second

	statusOK       = "ok"
	statusDown     = "down"
	statusDisabled = "disabled"
	statusDegraded = "degraded"
)

// DBPinger is satisfied by *sqlx.DB
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database and cache are reachable
type HealthHandler struct {
	db    DBPinger
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when redis is not configured.
func NewHealthHandler(db DBPinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Pings the database and the cache. The database is required, the cache is not
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: statusOK, Database: statusOK, Cache: statusDisabled}

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Database health check failed", zap.Error(err))
		resp.Database = statusDown
		resp.Status = statusDown
	}

	if h.cache != nil {
		resp.Cache = statusOK
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			resp.Cache = statusDown
			if resp.Status == statusOK {
				resp.Status = statusDegraded
			}
		}
	}

	if resp.Status == statusDown {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

package handler

import (
	"context"
	"time"

	"lingo-days/internal/domain"
	"lingo-days/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type HealthHandler struct {
	db    Pinger
	cache domain.Cache
}

func NewHealthHandler(db Pinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check godoc
// @Summary Health check
// @Description Pings the database and the cache. A cache outage degrades but does not fail the check.
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Failure 503 {object} handler.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "up", Cache: "up"}
	status := fiber.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Health check: database unreachable", zap.Error(err))
		resp.Status = "unavailable"
		resp.Database = "down"
		status = fiber.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Health check: cache unreachable", zap.Error(err))
		resp.Cache = "down"
		if status == fiber.StatusOK {
			resp.Status = "degraded"
		}
	}
	return c.Status(status).JSON(resp)
}

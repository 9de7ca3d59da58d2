package handler

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quiz-league/internal/dto"
	"quiz-league/internal/logger"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]CheckFunc
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler runs every check on each request, each bounded by timeout.
func NewHealthHandler(checks map[string]CheckFunc, timeout time.Duration) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: timeout, now: time.Now}
}

// Check handles GET /health. Any failing check turns the response into a 503.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(names)), CheckedAt: h.now()}
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
		err := h.checks[name](ctx)
		cancel()
		if err != nil {
			logger.Get().Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Status = "degraded"
			resp.Checks[name] = "down"
			continue
		}
		resp.Checks[name] = "up"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

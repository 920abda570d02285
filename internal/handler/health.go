package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// HealthHandler is a health-check endpoint used by load balancers and
// monitoring systems. It reports whether the database answers a ping.
type HealthHandler struct {
	DB     Pinger
	logger *logrus.Entry
}

func NewHealthHandler(db Pinger, logger *logrus.Entry) *HealthHandler {
	return &HealthHandler{DB: db, logger: logger}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		h.logger.WithError(err).Warn("Health check: database unreachable")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "status": "degraded", "database": "down"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "status": "ok", "database": "up"})
}

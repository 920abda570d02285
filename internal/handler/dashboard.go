package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// DashboardHandler serves GET /api/dashboard-stats.
type DashboardHandler struct {
	Store  StatsStore
	logger *logrus.Entry
}

func NewDashboardHandler(stats StatsStore, logger *logrus.Entry) *DashboardHandler {
	return &DashboardHandler{Store: stats, logger: logger}
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.Store.Dashboard(c.Request().Context())
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch dashboard stats")
	}
	return ok(c, http.StatusOK, "stats", stats)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

// LayoutHistoryHandler serves /api/layout-history.
type LayoutHistoryHandler struct {
	History LayoutHistoryStore
	logger  *logrus.Entry
}

func NewLayoutHistoryHandler(history LayoutHistoryStore, logger *logrus.Entry) *LayoutHistoryHandler {
	return &LayoutHistoryHandler{History: history, logger: logger.WithField(log.FldComponent, "layout_history")}
}

type snapshotRequest struct {
	Layout      model.JSONDoc `json:"layout"      validate:"required"`
	Description *string       `json:"description" validate:"omitempty,max=255"`
}

// pruneRequest overrides the configured retention for one run. Absent
// fields keep the configured value; values <= 0 disable a rule.
type pruneRequest struct {
	MaxEntries    *int `json:"max_entries"`
	RetentionDays *int `json:"retention_days"`
}

// Create handles POST /api/layout-history.
func (h *LayoutHistoryHandler) Create(c echo.Context) error {
	var req snapshotRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if !req.Layout.Valid() {
		return fail(c, http.StatusBadRequest, "layout must be valid JSON")
	}
	snap := &model.LayoutSnapshot{Layout: req.Layout, Description: req.Description}
	if err := h.History.Create(c.Request().Context(), snap); err != nil {
		return serverError(c, h.logger, err, "failed to save layout snapshot")
	}
	return ok(c, http.StatusCreated, "snapshot", snap)
}

// List handles GET /api/layout-history[?limit=].
func (h *LayoutHistoryHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fail(c, http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}
	out, err := h.History.List(c.Request().Context(), limit)
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch layout history")
	}
	return ok(c, http.StatusOK, "history", out)
}

// Get handles GET /api/layout-history/:id.
func (h *LayoutHistoryHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid snapshot id")
	}
	snap, err := h.History.Get(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.logger, err, "snapshot")
	}
	return ok(c, http.StatusOK, "snapshot", snap)
}

// Prune handles POST /api/layout-history/prune.
func (h *LayoutHistoryHandler) Prune(c echo.Context) error {
	var req pruneRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	maxEntries, retentionDays := h.History.Limits()
	if req.MaxEntries != nil {
		maxEntries = *req.MaxEntries
	}
	if req.RetentionDays != nil {
		retentionDays = *req.RetentionDays
	}
	res, err := h.History.Prune(c.Request().Context(), maxEntries, retentionDays)
	if err != nil {
		return serverError(c, h.logger, err, "failed to prune layout history")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"deleted_by_count": res.DeletedByCount,
		"deleted_by_age":   res.DeletedByAge,
		"max_entries":      maxEntries,
		"retention_days":   retentionDays,
	})
}

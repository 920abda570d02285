package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

// SettingsHandler serves one key/value settings table; the router mounts
// one instance for business settings and one for stage settings.
type SettingsHandler struct {
	Settings SettingsStore
	logger   *logrus.Entry
}

func NewSettingsHandler(s SettingsStore, name string, logger *logrus.Entry) *SettingsHandler {
	return &SettingsHandler{Settings: s, logger: logger.WithField(log.FldComponent, name)}
}

// Get returns all settings as a single key -> value object.
func (h *SettingsHandler) Get(c echo.Context) error {
	all, err := h.Settings.All(c.Request().Context())
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch settings")
	}
	return ok(c, http.StatusOK, "settings", settingsMap(all))
}

// Put upserts every key of the JSON object body and returns the full set.
// A body of the form {"settings": {...}} is accepted as well.
func (h *SettingsHandler) Put(c echo.Context) error {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return fail(c, http.StatusBadRequest, "request body must be a JSON object")
	}
	if inner, nested := body["settings"]; nested && len(body) == 1 {
		body = nil
		if err := json.Unmarshal(inner, &body); err != nil {
			return fail(c, http.StatusBadRequest, "settings must be a JSON object")
		}
	}
	if len(body) == 0 {
		return fail(c, http.StatusBadRequest, "no settings to update")
	}
	values := make(map[string]model.JSONDoc, len(body))
	for k, v := range body {
		k = strings.TrimSpace(k)
		if k == "" || len(k) > 100 {
			return fail(c, http.StatusBadRequest, "invalid setting key")
		}
		values[k] = model.JSONDoc(v)
	}
	ctx := c.Request().Context()
	if err := h.Settings.Upsert(ctx, values); err != nil {
		return serverError(c, h.logger, err, "failed to update settings")
	}
	all, err := h.Settings.All(ctx)
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch settings")
	}
	return ok(c, http.StatusOK, "settings", settingsMap(all))
}

func settingsMap(all []model.Setting) map[string]model.JSONDoc {
	out := make(map[string]model.JSONDoc, len(all))
	for _, s := range all {
		out[s.Key] = s.Value
	}
	return out
}

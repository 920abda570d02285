package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/log"
)

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

func testHandlers() Handlers {
	logger := log.Discard()
	return Handlers{
		Auth:          handler.NewAuthHandler(config.AuthConfig{JWTSecret: "secret"}, nil, logger),
		Health:        handler.NewHealthHandler(pingOK{}, logger),
		Dashboard:     handler.NewDashboardHandler(nil, logger),
		Events:        handler.NewEventHandler(nil, logger),
		Seating:       handler.NewSeatingHandler(nil, logger),
		SeatRequests:  handler.NewSeatRequestHandler(nil, nil, logger),
		Suggestions:   handler.NewSuggestionHandler(nil, logger),
		Business:      handler.NewSettingsHandler(nil, "business_settings", logger),
		Stage:         handler.NewSettingsHandler(nil, "stage_settings", logger),
		LayoutHistory: handler.NewLayoutHistoryHandler(nil, logger),
	}
}

func serve(opts Options, method, path string) *httptest.ResponseRecorder {
	e := New(testHandlers(), opts, log.Discard())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRoutesRegistered(t *testing.T) {
	e := New(testHandlers(), Options{CORSOrigins: []string{"*"}}, log.Discard())
	have := map[string]bool{}
	for _, r := range e.Routes() {
		have[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/events", "POST /api/events", "PUT /api/events/:id", "DELETE /api/events/:id",
		"GET /api/seating", "PATCH /api/seating/:id",
		"GET /api/settings", "PUT /api/settings", "GET /api/stage-settings", "PUT /api/stage-settings",
		"POST /api/seat-requests", "POST /api/seat-requests/:id/approve", "POST /api/seat-requests/:id/deny",
		"POST /api/suggestions", "PUT /api/suggestions/:id",
		"POST /api/layout-history", "POST /api/layout-history/prune",
		"GET /api/dashboard-stats", "GET /api/health", "POST /api/login",
	} {
		assert.True(t, have[want], want)
	}
}

func TestAdminRoutesRequireTokenWhenEnabled(t *testing.T) {
	opts := Options{AuthRequired: true, JWTSecret: "secret", CORSOrigins: []string{"*"}}

	assert.Equal(t, http.StatusUnauthorized, serve(opts, http.MethodPost, "/api/events").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(opts, http.MethodPost, "/api/seat-requests/1/approve").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(opts, http.MethodGet, "/api/dashboard-stats").Code)
	assert.Equal(t, http.StatusOK, serve(opts, http.MethodGet, "/api/health").Code)
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

// EventHandler serves /api/events.
type EventHandler struct {
	Events EventStore
	logger *logrus.Entry
}

func NewEventHandler(events EventStore, logger *logrus.Entry) *EventHandler {
	return &EventHandler{Events: events, logger: logger.WithField(log.FldComponent, "events")}
}

// eventRequest is the create/update body. Older clients send the start as
// separate event_date and event_time fields; they are folded into
// start_datetime when start_datetime itself is missing.
type eventRequest struct {
	Title         string   `json:"title"          validate:"required,max=255"`
	ArtistName    *string  `json:"artist_name"    validate:"omitempty,max=255"`
	Description   *string  `json:"description"`
	StartDatetime string   `json:"start_datetime"`
	EventDate     string   `json:"event_date"`
	EventTime     string   `json:"event_time"`
	EndDatetime   string   `json:"end_datetime"`
	VenueSection  *string  `json:"venue_section"`
	TicketPrice   *float64 `json:"ticket_price"   validate:"omitempty,gte=0"`
	VIPPrice      *float64 `json:"vip_price"      validate:"omitempty,gte=0"`
	Capacity      *int     `json:"capacity"       validate:"omitempty,gte=0"`
	Status        string   `json:"status"         validate:"omitempty,oneof=scheduled cancelled completed"`
	ImageURL      *string  `json:"image_url"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp accepts the formats the dashboard and older clients send.
// Values without a zone are taken as UTC.
func parseTimestamp(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// start resolves start_datetime, falling back to event_date + event_time.
func (r eventRequest) start() (*time.Time, error) {
	if strings.TrimSpace(r.StartDatetime) != "" {
		return parseTimestamp(r.StartDatetime)
	}
	date := strings.TrimSpace(r.EventDate)
	if date == "" {
		return nil, nil
	}
	if clock := strings.TrimSpace(r.EventTime); clock != "" {
		return parseTimestamp(date + " " + clock)
	}
	return parseTimestamp(date)
}

func (r eventRequest) toModel() (*model.Event, error) {
	start, err := r.start()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid start_datetime")
	}
	end, err := parseTimestamp(r.EndDatetime)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid end_datetime")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "end_datetime must not be before start_datetime")
	}
	return &model.Event{
		Title:         strings.TrimSpace(r.Title),
		ArtistName:    r.ArtistName,
		Description:   r.Description,
		StartDatetime: start,
		EndDatetime:   end,
		VenueSection:  r.VenueSection,
		TicketPrice:   r.TicketPrice,
		VIPPrice:      r.VIPPrice,
		Capacity:      r.Capacity,
		Status:        r.Status,
		ImageURL:      r.ImageURL,
	}, nil
}

// List handles GET /api/events. ?upcoming=true hides past events.
func (h *EventHandler) List(c echo.Context) error {
	upcoming := c.QueryParam("upcoming") == "true" || c.QueryParam("upcoming") == "1"
	events, err := h.Events.List(c.Request().Context(), upcoming)
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch events")
	}
	return ok(c, http.StatusOK, "events", events)
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	ev, err := h.Events.Get(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.logger, err, "event")
	}
	return ok(c, http.StatusOK, "event", ev)
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ev, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.Events.Create(c.Request().Context(), ev); err != nil {
		return serverError(c, h.logger, err, "failed to create event")
	}
	h.logger.WithField(log.FldID, ev.ID).Info("Event created")
	return ok(c, http.StatusCreated, "event", ev)
}

// Update handles PUT /api/events/:id and replaces every editable field.
func (h *EventHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	var req eventRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ev, err := req.toModel()
	if err != nil {
		return err
	}
	ev.ID = id
	if ev.Status == "" {
		ev.Status = model.EventStatusScheduled
	}
	if err := h.Events.Update(c.Request().Context(), ev); err != nil {
		return storeError(c, h.logger, err, "event")
	}
	return ok(c, http.StatusOK, "event", ev)
}

// Delete handles DELETE /api/events/:id.
func (h *EventHandler) Delete(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, h.logger, err, "event")
	}
	h.logger.WithField(log.FldID, id).Info("Event deleted")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "event deleted"})
}

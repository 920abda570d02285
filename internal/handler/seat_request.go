package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// SeatRequestHandler serves /api/seat-requests including the approve and
// deny transitions.
type SeatRequestHandler struct {
	Requests SeatRequestStore
	Notifier Notifier
	logger   *logrus.Entry
}

func NewSeatRequestHandler(requests SeatRequestStore, notifier Notifier, logger *logrus.Entry) *SeatRequestHandler {
	return &SeatRequestHandler{Requests: requests, Notifier: notifier, logger: logger.WithField(log.FldComponent, "seat_requests")}
}

type seatRequestCreate struct {
	EventID         *uint64        `json:"event_id"`
	CustomerName    string         `json:"customer_name"    validate:"required,max=255"`
	CustomerEmail   string         `json:"customer_email"   validate:"required,email,max=255"`
	CustomerPhone   *string        `json:"customer_phone"   validate:"omitempty,max=50"`
	SelectedSeats   model.SeatList `json:"selected_seats"   validate:"required,min=1"`
	TotalSeats      int            `json:"total_seats"      validate:"gte=0"`
	SpecialRequests *string        `json:"special_requests"`
}

type seatRequestUpdate struct {
	CustomerName    *string         `json:"customer_name"    validate:"omitempty,min=1,max=255"`
	CustomerEmail   *string         `json:"customer_email"   validate:"omitempty,email,max=255"`
	CustomerPhone   *string         `json:"customer_phone"   validate:"omitempty,max=50"`
	SelectedSeats   *model.SeatList `json:"selected_seats"`
	TotalSeats      *int            `json:"total_seats"      validate:"omitempty,gte=0"`
	SpecialRequests *string         `json:"special_requests"`
	Status          *string         `json:"status"           validate:"omitempty,oneof=pending approved denied"`
}

func (h *SeatRequestHandler) notify(c echo.Context, typ string, req *model.SeatRequest) {
	if h.Notifier == nil || req == nil {
		return
	}
	h.Notifier.Notify(c.Request().Context(), queue.NewSeatRequestEvent(typ, req))
}

// List handles GET /api/seat-requests[?status=&event_id=].
func (h *SeatRequestHandler) List(c echo.Context) error {
	f := model.SeatRequestFilter{Status: strings.ToLower(strings.TrimSpace(c.QueryParam("status")))}
	if f.Status != "" && !model.ValidRequestStatus(f.Status) {
		return fail(c, http.StatusBadRequest, "invalid status filter")
	}
	eventID, err := queryUint(c, "event_id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event_id")
	}
	f.EventID = eventID
	reqs, err := h.Requests.List(c.Request().Context(), f)
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch seat requests")
	}
	return ok(c, http.StatusOK, "seat_requests", reqs)
}

// Get handles GET /api/seat-requests/:id.
func (h *SeatRequestHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seat request id")
	}
	req, err := h.Requests.Get(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.logger, err, "seat request")
	}
	return ok(c, http.StatusOK, "seat_request", req)
}

// Create handles the public POST /api/seat-requests. Seat identifiers are
// validated and de-duplicated; the request starts as pending.
func (h *SeatRequestHandler) Create(c echo.Context) error {
	var body seatRequestCreate
	if err := bindValid(c, &body); err != nil {
		return err
	}
	seats, err := body.SelectedSeats.Validate()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	req := &model.SeatRequest{
		EventID:         body.EventID,
		CustomerName:    strings.TrimSpace(body.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(body.CustomerEmail)),
		CustomerPhone:   body.CustomerPhone,
		SelectedSeats:   seats,
		TotalSeats:      body.TotalSeats,
		SpecialRequests: body.SpecialRequests,
	}
	if req.TotalSeats < len(seats) {
		req.TotalSeats = len(seats)
	}
	if err := h.Requests.Create(c.Request().Context(), req); err != nil {
		return serverError(c, h.logger, err, "failed to submit seat request")
	}
	h.notify(c, queue.EventSubmitted, req)
	return ok(c, http.StatusCreated, "seat_request", req)
}

// Update handles PUT /api/seat-requests/:id. Moving a request to approved
// must go through the approve endpoint so seating stays consistent.
func (h *SeatRequestHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seat request id")
	}
	var body seatRequestUpdate
	if err := bindValid(c, &body); err != nil {
		return err
	}
	if body.Status != nil && *body.Status == model.RequestStatusApproved {
		return fail(c, http.StatusBadRequest, "use POST /api/seat-requests/:id/approve to approve a request")
	}
	u := repository.SeatRequestUpdate{
		CustomerName:    body.CustomerName,
		CustomerEmail:   body.CustomerEmail,
		CustomerPhone:   body.CustomerPhone,
		TotalSeats:      body.TotalSeats,
		SpecialRequests: body.SpecialRequests,
		Status:          body.Status,
	}
	if body.SelectedSeats != nil {
		seats, err := body.SelectedSeats.Validate()
		if err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		u.SelectedSeats = &seats
	}
	req, err := h.Requests.Update(c.Request().Context(), id, u)
	if err != nil {
		return storeError(c, h.logger, err, "seat request")
	}
	return ok(c, http.StatusOK, "seat_request", req)
}

// Approve handles POST /api/seat-requests/:id/approve. Seats already
// reserved produce 409 with the conflicting identifiers and no changes.
func (h *SeatRequestHandler) Approve(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seat request id")
	}
	res, err := h.Requests.Approve(c.Request().Context(), id)
	if err != nil {
		var conflict *repository.SeatConflictError
		if errors.As(err, &conflict) {
			return c.JSON(http.StatusConflict, echo.Map{
				"success":   false,
				"message":   "some seats are already reserved",
				"conflicts": conflict.Seats,
			})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "seat request not found")
		}
		return serverError(c, h.logger, err, "failed to approve seat request")
	}
	h.notify(c, queue.EventApproved, res.Request)
	skipped := res.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"message":       "seat request approved",
		"seat_request":  res.Request,
		"applied_seats": res.Applied,
		"skipped_seats": skipped,
	})
}

// Deny handles POST /api/seat-requests/:id/deny.
func (h *SeatRequestHandler) Deny(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seat request id")
	}
	req, err := h.Requests.Deny(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.logger, err, "seat request")
	}
	h.notify(c, queue.EventDenied, req)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "seat request denied", "seat_request": req})
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

// SeatingHandler serves /api/seating.
type SeatingHandler struct {
	Seating SeatingStore
	logger  *logrus.Entry
}

func NewSeatingHandler(seating SeatingStore, logger *logrus.Entry) *SeatingHandler {
	return &SeatingHandler{Seating: seating, logger: logger.WithField(log.FldComponent, "seating")}
}

type seatingRequest struct {
	EventID       *uint64        `json:"event_id"`
	Section       string         `json:"section"        validate:"required,max=64"`
	RowLabel      string         `json:"row_label"      validate:"required,max=16"`
	SeatNumber    int            `json:"seat_number"    validate:"gte=0"`
	TotalSeats    int            `json:"total_seats"    validate:"gte=0"`
	SeatType      string         `json:"seat_type"      validate:"omitempty,max=32"`
	IsActive      *bool          `json:"is_active"`
	SelectedSeats model.SeatList `json:"selected_seats"`
	PositionX     float64        `json:"position_x"`
	PositionY     float64        `json:"position_y"`
	Rotation      float64        `json:"rotation"`
	Status        string         `json:"status"         validate:"omitempty,max=32"`
}

// seatingPatchRequest mirrors model.SeatingPatch. event_id is kept raw so
// an explicit null can unbind the row from its event.
type seatingPatchRequest struct {
	EventID       json.RawMessage `json:"event_id"`
	Section       *string         `json:"section"     validate:"omitempty,min=1,max=64"`
	RowLabel      *string         `json:"row_label"   validate:"omitempty,min=1,max=16"`
	SeatNumber    *int            `json:"seat_number" validate:"omitempty,gte=0"`
	TotalSeats    *int            `json:"total_seats" validate:"omitempty,gte=0"`
	SeatType      *string         `json:"seat_type"   validate:"omitempty,max=32"`
	IsActive      *bool           `json:"is_active"`
	SelectedSeats *model.SeatList `json:"selected_seats"`
	PositionX     *float64        `json:"position_x"`
	PositionY     *float64        `json:"position_y"`
	Rotation      *float64        `json:"rotation"`
	Status        *string         `json:"status"      validate:"omitempty,max=32"`
}

func (r seatingPatchRequest) toPatch() (model.SeatingPatch, error) {
	p := model.SeatingPatch{
		Section:    r.Section,
		RowLabel:   r.RowLabel,
		SeatNumber: r.SeatNumber,
		TotalSeats: r.TotalSeats,
		SeatType:   r.SeatType,
		IsActive:   r.IsActive,
		PositionX:  r.PositionX,
		PositionY:  r.PositionY,
		Rotation:   r.Rotation,
		Status:     r.Status,
	}
	if len(r.EventID) > 0 {
		var id uint64
		if !bytes.Equal(bytes.TrimSpace(r.EventID), []byte("null")) {
			if err := json.Unmarshal(r.EventID, &id); err != nil {
				return p, echo.NewHTTPError(http.StatusBadRequest, "invalid event_id")
			}
		}
		p.EventID = &id
	}
	if r.SelectedSeats != nil {
		seats, err := r.SelectedSeats.Validate()
		if err != nil {
			return p, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		p.SelectedSeats = &seats
	}
	return p, nil
}

func (r seatingPatchRequest) empty() bool {
	return len(r.EventID) == 0 && r.Section == nil && r.RowLabel == nil && r.SeatNumber == nil &&
		r.TotalSeats == nil && r.SeatType == nil && r.IsActive == nil && r.SelectedSeats == nil &&
		r.PositionX == nil && r.PositionY == nil && r.Rotation == nil && r.Status == nil
}

// List handles GET /api/seating[?event_id=].
func (h *SeatingHandler) List(c echo.Context) error {
	eventID, err := queryUint(c, "event_id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event_id")
	}
	rows, err := h.Seating.List(c.Request().Context(), eventID)
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch seating")
	}
	return ok(c, http.StatusOK, "seating", rows)
}

// Get handles GET /api/seating/:id.
func (h *SeatingHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seating id")
	}
	row, err := h.Seating.Get(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.logger, err, "seating row")
	}
	return ok(c, http.StatusOK, "seating", row)
}

// Create handles POST /api/seating.
func (h *SeatingHandler) Create(c echo.Context) error {
	var req seatingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	seats, err := req.SelectedSeats.Validate()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	row := &model.Seating{
		EventID:       req.EventID,
		Section:       req.Section,
		RowLabel:      req.RowLabel,
		SeatNumber:    req.SeatNumber,
		TotalSeats:    req.TotalSeats,
		SeatType:      req.SeatType,
		IsActive:      req.IsActive == nil || *req.IsActive,
		SelectedSeats: seats,
		PositionX:     req.PositionX,
		PositionY:     req.PositionY,
		Rotation:      req.Rotation,
		Status:        req.Status,
	}
	if row.SeatType == "" {
		row.SeatType = "standard"
	}
	if row.Status == "" {
		row.Status = "available"
	}
	if err := h.Seating.Create(c.Request().Context(), row); err != nil {
		return serverError(c, h.logger, err, "failed to create seating row")
	}
	return ok(c, http.StatusCreated, "seating", row)
}

// Patch handles PATCH /api/seating/:id, updating only the fields present
// in the body. An empty body is rejected.
func (h *SeatingHandler) Patch(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seating id")
	}
	var req seatingPatchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.empty() {
		return fail(c, http.StatusBadRequest, "no fields to update")
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}
	row, err := h.Seating.Patch(c.Request().Context(), id, patch)
	if err != nil {
		return storeError(c, h.logger, err, "seating row")
	}
	return ok(c, http.StatusOK, "seating", row)
}

// Delete handles DELETE /api/seating/:id.
func (h *SeatingHandler) Delete(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid seating id")
	}
	if err := h.Seating.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, h.logger, err, "seating row")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "seating row deleted"})
}

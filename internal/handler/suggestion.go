package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// SuggestionHandler serves /api/suggestions.
type SuggestionHandler struct {
	Suggestions SuggestionStore
	logger      *logrus.Entry
}

func NewSuggestionHandler(s SuggestionStore, logger *logrus.Entry) *SuggestionHandler {
	return &SuggestionHandler{Suggestions: s, logger: logger.WithField(log.FldComponent, "suggestions")}
}

// suggestionCreate accepts "notes" as an alias of "message" and a contact
// given either as an object or as a single string.
type suggestionCreate struct {
	Name           string        `json:"name"            validate:"required,max=255"`
	ArtistName     *string       `json:"artist_name"     validate:"omitempty,max=255"`
	Contact        model.Contact `json:"contact"`
	Message        *string       `json:"message"`
	Notes          *string       `json:"notes"`
	SubmissionType string        `json:"submission_type" validate:"omitempty,max=50"`
}

type suggestionUpdate struct {
	Name           *string        `json:"name"            validate:"omitempty,min=1,max=255"`
	ArtistName     *string        `json:"artist_name"     validate:"omitempty,max=255"`
	Contact        *model.Contact `json:"contact"`
	Message        *string        `json:"message"`
	SubmissionType *string        `json:"submission_type" validate:"omitempty,max=50"`
	Status         *string        `json:"status"          validate:"omitempty,min=1,max=50"`
}

// List handles GET /api/suggestions[?status=].
func (h *SuggestionHandler) List(c echo.Context) error {
	out, err := h.Suggestions.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return serverError(c, h.logger, err, "failed to fetch suggestions")
	}
	return ok(c, http.StatusOK, "suggestions", out)
}

// Get handles GET /api/suggestions/:id.
func (h *SuggestionHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid suggestion id")
	}
	s, err := h.Suggestions.Get(c.Request().Context(), id)
	if err != nil {
		return storeError(c, h.logger, err, "suggestion")
	}
	return ok(c, http.StatusOK, "suggestion", s)
}

// Create handles the public POST /api/suggestions.
func (h *SuggestionHandler) Create(c echo.Context) error {
	var body suggestionCreate
	if err := bindValid(c, &body); err != nil {
		return err
	}
	msg := body.Message
	if msg == nil {
		msg = body.Notes
	}
	s := &model.Suggestion{
		Name:           strings.TrimSpace(body.Name),
		ArtistName:     body.ArtistName,
		Contact:        body.Contact,
		Message:        msg,
		SubmissionType: body.SubmissionType,
	}
	if err := h.Suggestions.Create(c.Request().Context(), s); err != nil {
		return serverError(c, h.logger, err, "failed to submit suggestion")
	}
	return ok(c, http.StatusCreated, "suggestion", s)
}

// Update handles PUT /api/suggestions/:id, typically a status change.
func (h *SuggestionHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid suggestion id")
	}
	var body suggestionUpdate
	if err := bindValid(c, &body); err != nil {
		return err
	}
	s, err := h.Suggestions.Update(c.Request().Context(), id, repository.SuggestionUpdate{
		Name:           body.Name,
		ArtistName:     body.ArtistName,
		Contact:        body.Contact,
		Message:        body.Message,
		SubmissionType: body.SubmissionType,
		Status:         body.Status,
	})
	if err != nil {
		return storeError(c, h.logger, err, "suggestion")
	}
	return ok(c, http.StatusOK, "suggestion", s)
}

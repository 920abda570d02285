package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// ok writes {success:true, key:val}.
func ok(c echo.Context, status int, key string, val any) error {
	return c.JSON(status, echo.Map{"success": true, key: val})
}

// fail writes the uniform {success:false, message} envelope.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// serverError logs err with the request context and hides it from the client.
func serverError(c echo.Context, logger *logrus.Entry, err error, msg string) error {
	logger.WithError(err).
		WithField(log.FldRequestID, c.Response().Header().Get(echo.HeaderXRequestID)).
		WithField(log.FldPath, c.Path()).
		Error(msg)
	return fail(c, http.StatusInternalServerError, msg)
}

// storeError maps repository sentinels to responses; anything else is a 500.
func storeError(c echo.Context, logger *logrus.Entry, err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return fail(c, http.StatusConflict, what+" already exists")
	}
	return serverError(c, logger, err, "failed to process "+what)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// queryUint parses an optional numeric query parameter.
func queryUint(c echo.Context, name string) (*uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// bindValid binds the body into dst and runs the echo validator. The
// returned error is an *echo.HTTPError the error handler renders as 400.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

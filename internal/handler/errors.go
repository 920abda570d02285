package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
)

// HTTPErrorHandler renders errors that escape a handler (unknown routes,
// bind failures, recovered panics) in the {success:false, message}
// envelope.
func HTTPErrorHandler(logger *logrus.Entry) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			logger.WithError(err).
				WithField(log.FldMethod, c.Request().Method).
				WithField(log.FldPath, c.Request().URL.Path).
				Error("Unhandled error")
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"success": false, "message": msg})
		}
		if err != nil {
			logger.WithError(err).Warn("Failed to write error response")
		}
	}
}

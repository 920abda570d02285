package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
)

// RequestID sets X-Request-ID on every response, keeping an incoming one.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one logrus entry per request.
func RequestLogger(logger *logrus.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			entry := logger.WithFields(logrus.Fields{
				log.FldRequestID: res.Header().Get(echo.HeaderXRequestID),
				log.FldMethod:    req.Method,
				log.FldPath:      req.URL.Path,
				log.FldStatus:    res.Status,
				log.FldLatency:   time.Since(start).String(),
				log.FldIP:        c.RealIP(),
			})
			switch {
			case res.Status >= 500:
				entry.Error("Request failed")
			case res.Status >= 400:
				entry.Warn("Request rejected")
			default:
				entry.Info("Request served")
			}
			return nil
		}
	}
}

// CORS adapts rs/cors to echo. A single "*" origin allows any origin.
func CORS(origins []string) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         600,
	})
	return echo.WrapMiddleware(c.Handler)
}

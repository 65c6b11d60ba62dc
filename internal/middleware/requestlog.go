package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/venue-booking-directory/internal/logging"
	"github.com/iliyamo/venue-booking-directory/internal/metrics"
)

// RequestLogger assigns each request an id, echoes it in X-Request-ID,
// stores a request-scoped logger in the context and logs one line when the
// request completes.  An incoming X-Request-ID is kept.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = logging.GenerateRequestID()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			l := logging.With().Str("request_id", id).Logger()
			ctx := logging.ContextWithRequestID(req.Context(), id)
			ctx = logging.WithContext(ctx, l)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo's error handler write the response so the
				// status below is the one the client sees
				c.Error(err)
			}

			status := c.Response().Status
			var ev *zerolog.Event
			switch {
			case status >= 500:
				ev = l.Error().Err(err)
			case status >= 400:
				ev = l.Warn()
			default:
				ev = l.Info()
			}
			ev.Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}

// Metrics records request counts and latency by matched route.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
			return nil
		}
	}
}

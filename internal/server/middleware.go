package server

import (
	"errors"
	"strconv"
	"time"

	apperrors "github.com/KadenLi6741/Localys-sub000/internal/errors"
	"github.com/KadenLi6741/Localys-sub000/internal/metrics"
	"github.com/KadenLi6741/Localys-sub000/internal/platform/correlation"
	"github.com/labstack/echo/v4"
)

// identityHeader carries the verified caller identity, set by the platform
// edge after it validates the session token. The service trusts it blindly;
// authentication itself is owned by the external platform.
const identityHeader = "X-User-ID"

// correlationMiddleware attaches a correlation ID to the request context,
// reusing an incoming X-Correlation-ID header when present.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Correlation-ID")
			if id == "" {
				id = correlation.NewID()
			}

			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Correlation-ID", id)
			return next(c)
		}
	}
}

// requestMetricsMiddleware records request counts and latency per route.
func requestMetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			status := c.Response().Status
			if err != nil {
				// Raw HTTPErrors (requireIdentity's 401, routing 404/405)
				// keep their own status; everything else maps through the
				// structured error taxonomy.
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else if structured := apperrors.AsStructuredError(err); structured != nil {
					status = structured.HTTPStatus()
				}
			}

			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// requireIdentity rejects requests without a caller identity and stores it
// under "userID" for handlers.
func (s *Server) requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(identityHeader)
		if userID == "" {
			return echo.NewHTTPError(401, "missing caller identity")
		}
		c.Set("userID", userID)
		return next(c)
	}
}

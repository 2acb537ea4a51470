package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/ratelimit"
)

// RateLimit refuses clients over their limit with 429. If the limiter
// itself fails the request goes through.
func RateLimit(l ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Printf("ratelimit: %v", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				secs := int(res.RetryAfter.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				h.Set("Retry-After", strconv.Itoa(secs))
				return apperrors.TooManyRequests("rate limit exceeded")
			}

			return next(c)
		}
	}
}

// Package middleware provides the Fiber middleware stack shared by the coursework
// binaries: request IDs, structured request logging, security headers, form-post
// throttling and the error handler that turns apperr kinds into responses.
package middleware

import (
	"time"

	"github.com/avissapr/coursework/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID. An ID sent by the client is kept;
// otherwise a random UUID is generated. The ID is echoed in the response header
// and stored in c.Locals("request_id").
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// RequestLogger logs one structured line per request after the handler chain
// (including the error handler) has run.
func RequestLogger(logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Let the app's ErrorHandler write the response so the logged status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		requestID, _ := c.Locals("request_id").(string)
		logger.HTTPRequest(
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start).Milliseconds(),
			c.IP(),
			c.Get(fiber.HeaderUserAgent),
			requestID,
		)

		return nil
	}
}

// SecureHeaders adds security headers to responses.
// HSTS is only sent in production, where the app sits behind TLS.
func SecureHeaders(production bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if production {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	}
}

// WriteThrottle limits form posts per client IP. Reads are never throttled.
// A nil limiter disables the check.
func WriteThrottle(limiter *RateLimiter, logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || c.Method() != fiber.MethodPost {
			return c.Next()
		}

		if !limiter.Allow(c.IP()) {
			logger.Event(logging.EventWriteThrottled, map[string]interface{}{
				"ip":   c.IP(),
				"path": c.Path(),
			})
			c.Set(fiber.HeaderRetryAfter, "60")
			return c.Status(fiber.StatusTooManyRequests).
				SendString("Too many changes, please try again later")
		}

		return c.Next()
	}
}

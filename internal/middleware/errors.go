package middleware

import (
	"errors"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ErrorHandler converts errors returned by handlers into responses.
//
// Status mapping:
//   - *fiber.Error: its own code (unknown routes, bad methods)
//   - apperr NotFound: 404
//   - apperr ValidationFailure: 422
//   - anything else: 500, logged at ERROR
//
// The "error" view is rendered when the app has views; otherwise the message
// is sent as plain text.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := apperr.KindOf(err).HTTPStatus()
		message := err.Error()

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", err)
		}

		c.Status(code)
		if c.App().Config().Views != nil {
			renderErr := c.Render("error", fiber.Map{
				"Title":      utils.StatusMessage(code),
				"Status":     code,
				"Message":    message,
				"Violations": apperr.ViolationsOf(err),
			})
			if renderErr == nil {
				return nil
			}
			logger.Error("render error page", renderErr)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(message)
	}
}

package serverutils

import (
	"errors"

	"catalog-command-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the standard envelope. Pipeline errors carry their own status mapping;
// fiber errors keep their code; anything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.Kind.HTTPStatus()).JSON(ErrorResponse(appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}

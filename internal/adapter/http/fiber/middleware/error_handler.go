package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
)

// ErrorHandler maps domain error kinds onto HTTP status codes. Anything
// unclassified is a 500 and gets logged with its cause.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusForError(err)

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func statusForError(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindInvalidInput:
		return fiber.StatusBadRequest
	case domain.KindUnavailable:
		// A busy connector is a state conflict from the client's view.
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

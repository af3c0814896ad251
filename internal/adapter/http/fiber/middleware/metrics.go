package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/duongdanghoc/charging-station-manager/internal/observability/telemetry"
)

// Metrics counts every request by method, route pattern and status. The
// route pattern is used instead of the raw path so IDs do not explode the
// label cardinality.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusForError(err)
		}
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		telemetry.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		return err
	}
}

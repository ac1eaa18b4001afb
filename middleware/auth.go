// middleware/auth.go
package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"run-tracker/logger"
)

const (
	LocalAthleteID = "athlete_id"
	LocalRequestID = "request_id"
)

// AthleteContextMiddleware attaches the caller identity forwarded by the
// gateway. Requests without X-User-ID pass through anonymously.
func AthleteContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Set("X-Request-ID", requestID)

		if raw := c.Get("X-User-ID"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				logger.Warn.Printf("❌ [ATHLETE_CTX] Malformed X-User-ID %q on %s", raw, c.Path())
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "malformed X-User-ID header",
				})
			}
			c.Locals(LocalAthleteID, uint(id))
		}

		logger.Debug.Printf("👤 [ATHLETE_CTX] request=%s athlete=%v | Path: %s", requestID, c.Locals(LocalAthleteID), c.Path())
		return c.Next()
	}
}

// AthleteID returns the caller id set by AthleteContextMiddleware.
func AthleteID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalAthleteID).(uint)
	return id, ok
}

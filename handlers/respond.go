// handlers/respond.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"run-tracker/logger"
	"run-tracker/services"
)

// respondError maps service errors onto status codes.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}

	logger.Error.Printf("❌ [HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
		"cause": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, field, message string) error {
	return respondError(c, services.NewValidationError(field, message))
}

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}

// queryUint parses an optional non-negative integer query parameter.
func queryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, services.NewValidationError(name, "must be a non-negative integer")
	}
	return uint(v), nil
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	v, err := queryUint(c, name)
	return int(v), err
}

package handlers

import (
	"errors"
	"log"

	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain error kinds to HTTP statuses. Anything
// outside the taxonomy is a storage fault and becomes a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyEnrolled):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidRange):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders a domain error with its message; infrastructure
// failures are logged and surfaced as a generic retryable error so
// internals never leak to callers.
func writeError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "internal error, retry later"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

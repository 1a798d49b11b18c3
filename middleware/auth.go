package middleware

import (
	"log"

	"study-guild-system/models"
	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware resolves the gateway identity (X-User-ID holds
// the open id) to a local user row, creating it on first sight, and
// attaches the internal user id and role to the request context.
// Routes registered behind this middleware are the "protected" surface.
func UserContextMiddleware(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		openID := c.Get("X-User-ID")
		if openID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		user, err := users.GetByOpenID(openID)
		if err != nil {
			// First request for this identity: mirror it locally.
			user, err = users.UpsertUser(services.UpsertUserInput{
				OpenID: openID,
				Name:   c.Get("X-User-Name"),
				Email:  c.Get("X-User-Email"),
			})
			if err != nil {
				log.Printf("[USER_CTX] Failed to resolve user %s: %v", openID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to resolve user identity",
				})
			}
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		return c.Next()
	}
}

// RequireAdmin guards admin-only routes. Must run after
// UserContextMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(models.UserRole)
		if role != models.UserRoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		return c.Next()
	}
}

package handlers

import (
	"fmt"

	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupUserRoutes(app *fiber.App, users *services.UserService, notifications *services.NotificationService, userCtx fiber.Handler) {
	secured := app.Group("/", userCtx)

	secured.Get("/user/profile", func(c *fiber.Ctx) error {
		user, err := users.GetByID(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(user)
	})

	secured.Patch("/user/profile", func(c *fiber.Ctx) error {
		var req struct {
			Name   *string `json:"name"`
			Bio    *string `json:"bio"`
			Avatar *string `json:"avatar"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		err := users.UpdateProfile(currentUserID(c), services.UpdateProfileInput{
			Name:   req.Name,
			Bio:    req.Bio,
			Avatar: req.Avatar,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/user/avatar", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file required"})
		}

		userID := currentUserID(c)
		url, err := storeImage(fileHeader, fmt.Sprintf("avatars/%s/%s", userID, uuid.NewString()))
		if err != nil {
			return writeError(c, err)
		}

		avatar := url
		if err := users.UpdateProfile(userID, services.UpdateProfileInput{Avatar: &avatar}); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "avatar": url})
	})

	secured.Get("/user/notifications", func(c *fiber.Ctx) error {
		list, err := notifications.ListUserNotifications(currentUserID(c), c.QueryInt("limit", 50))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	secured.Post("/notifications/:id/read", func(c *fiber.Ctx) error {
		if err := notifications.MarkAsRead(c.Params("id"), currentUserID(c)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}

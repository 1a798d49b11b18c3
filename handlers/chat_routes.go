package handlers

import (
	"time"

	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App, chat *services.ChatService, sessions *services.SessionService, userCtx fiber.Handler) {
	app.Get("/guilds/:id/messages", func(c *fiber.Ctx) error {
		messages, err := chat.ListMessages(c.Params("id"), c.QueryInt("limit", 50))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(messages)
	})

	app.Get("/guilds/:id/sessions", func(c *fiber.Ctx) error {
		list, err := sessions.ListGuildSessions(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	secured := app.Group("/", userCtx)

	secured.Post("/guilds/:id/messages", func(c *fiber.Ctx) error {
		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		message, err := chat.SendMessage(c.Params("id"), currentUserID(c), req.Content)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(message)
	})

	secured.Post("/sessions", func(c *fiber.Ctx) error {
		var req struct {
			GuildID     string    `json:"guild_id"`
			Title       string    `json:"title"`
			Description string    `json:"description"`
			ScheduledAt time.Time `json:"scheduled_at"`
			Duration    int       `json:"duration"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		session, err := sessions.CreateSession(currentUserID(c), services.CreateSessionInput{
			GuildID:     req.GuildID,
			Title:       req.Title,
			Description: req.Description,
			ScheduledAt: req.ScheduledAt,
			Duration:    req.Duration,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": session.ID, "success": true})
	})

	secured.Post("/sessions/:id/join", func(c *fiber.Ctx) error {
		if err := sessions.JoinSession(c.Params("id"), currentUserID(c)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/sessions/:id/leave", func(c *fiber.Ctx) error {
		if err := sessions.LeaveSession(c.Params("id"), currentUserID(c)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}

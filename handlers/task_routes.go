package handlers

import (
	"time"

	"study-guild-system/models"
	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, tasks *services.TaskService, userCtx fiber.Handler) {
	app.Get("/guilds/:id/tasks", func(c *fiber.Ctx) error {
		list, err := tasks.ListGuildTasks(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	secured := app.Group("/", userCtx)

	secured.Post("/tasks", func(c *fiber.Ctx) error {
		var req struct {
			GuildID      string     `json:"guild_id"`
			Title        string     `json:"title"`
			Description  string     `json:"description"`
			DueDate      *time.Time `json:"due_date"`
			RewardPoints int        `json:"reward_points"`
			Difficulty   string     `json:"difficulty"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.RewardPoints == 0 {
			req.RewardPoints = 10
		}

		task, err := tasks.CreateTask(currentUserID(c), services.CreateTaskInput{
			GuildID:      req.GuildID,
			Title:        req.Title,
			Description:  req.Description,
			DueDate:      req.DueDate,
			RewardPoints: req.RewardPoints,
			Difficulty:   req.Difficulty,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": task.ID, "success": true})
	})

	secured.Post("/tasks/:id/assign", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.UserID == "" {
			req.UserID = currentUserID(c)
		}

		assignment, err := tasks.AssignToUser(c.Params("id"), req.UserID)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": assignment.ID, "success": true})
	})

	secured.Patch("/assignments/:id/status", func(c *fiber.Ctx) error {
		var req struct {
			Status models.AssignmentStatus `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if err := tasks.UpdateAssignmentStatus(c.Params("id"), req.Status); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Get("/user/tasks", func(c *fiber.Ctx) error {
		list, err := tasks.ListUserAssignments(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})
}

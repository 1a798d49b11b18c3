package handlers

import (
	"study-guild-system/middleware"
	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(app *fiber.App, progression *services.ProgressionService, achievements *services.AchievementService, leaderboard *services.LeaderboardService, userCtx fiber.Handler) {
	app.Get("/leaderboard/users", func(c *fiber.Ctx) error {
		entries, err := leaderboard.GetTopUsers(c.QueryInt("limit", 50))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(entries)
	})

	app.Get("/leaderboard/guilds", func(c *fiber.Ctx) error {
		entries, err := leaderboard.GetTopGuilds(c.QueryInt("limit", 50))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(entries)
	})

	secured := app.Group("/", userCtx)

	secured.Get("/user/progress", func(c *fiber.Ctx) error {
		stats, err := progression.GetUserStats(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(stats)
	})

	secured.Get("/user/rewards", func(c *fiber.Ctx) error {
		rewards, err := progression.ListUserRewards(currentUserID(c), c.QueryInt("limit", 50))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(rewards)
	})

	secured.Get("/user/achievements", func(c *fiber.Ctx) error {
		unlocked, err := achievements.ListUserAchievements(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(unlocked)
	})

	// Manual grants are an operator tool, not a player-facing surface.
	secured.Post("/rewards/grant", middleware.RequireAdmin(), func(c *fiber.Ctx) error {
		var req struct {
			UserID  string  `json:"user_id"`
			Points  int     `json:"points"`
			Reason  string  `json:"reason"`
			GuildID *string `json:"guild_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Reason == "" {
			req.Reason = "manual_grant"
		}

		user, err := progression.GrantReward(req.UserID, req.Points, req.Reason, req.GuildID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{
			"success":      true,
			"total_points": user.TotalPoints,
			"level":        user.Level,
		})
	})
}

package handlers

import (
	"fmt"
	"strconv"

	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupGuildRoutes(app *fiber.App, guilds *services.GuildService, progression *services.ProgressionService, userCtx fiber.Handler) {
	// Public reads
	app.Get("/guilds", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		list, err := guilds.ListPublic(limit)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	app.Get("/guilds/:id", func(c *fiber.Ctx) error {
		guild, err := guilds.GetByID(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(guild)
	})

	app.Get("/guilds/:id/members", func(c *fiber.Ctx) error {
		members, err := guilds.ListMembers(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(members)
	})

	app.Get("/guilds/:id/rewards", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		rewards, err := progression.ListGuildRewards(c.Params("id"), limit)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(rewards)
	})

	// Secured routes require user context from the gateway
	secured := app.Group("/", userCtx)

	secured.Post("/guilds", func(c *fiber.Ctx) error {
		var req struct {
			Name         string  `json:"name"`
			Description  string  `json:"description"`
			IsPublic     *bool   `json:"is_public"`
			PrimarySkill *string `json:"primary_skill"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		isPublic := true
		if req.IsPublic != nil {
			isPublic = *req.IsPublic
		}

		guild, err := guilds.CreateGuild(currentUserID(c), services.CreateGuildInput{
			Name:         req.Name,
			Description:  req.Description,
			IsPublic:     isPublic,
			PrimarySkill: req.PrimarySkill,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": guild.ID, "success": true})
	})

	secured.Post("/guilds/:id/join", func(c *fiber.Ctx) error {
		if err := guilds.Join(c.Params("id"), currentUserID(c)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Post("/guilds/:id/leave", func(c *fiber.Ctx) error {
		if err := guilds.Leave(c.Params("id"), currentUserID(c)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Get("/user/guilds", func(c *fiber.Ctx) error {
		list, err := guilds.ListUserGuilds(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	// Icon/banner upload, leader/moderator only
	secured.Post("/guilds/:id/images", func(c *fiber.Ctx) error {
		guildID := c.Params("id")
		if err := guilds.RequireModerator(guildID, currentUserID(c)); err != nil {
			return writeError(c, err)
		}

		var iconURL, bannerURL string
		if fileHeader, err := c.FormFile("icon"); err == nil {
			url, err := storeImage(fileHeader, fmt.Sprintf("guilds/%s/icon-%s", guildID, uuid.NewString()))
			if err != nil {
				return writeError(c, err)
			}
			iconURL = url
		}
		if fileHeader, err := c.FormFile("banner"); err == nil {
			url, err := storeImage(fileHeader, fmt.Sprintf("guilds/%s/banner-%s", guildID, uuid.NewString()))
			if err != nil {
				return writeError(c, err)
			}
			bannerURL = url
		}
		if iconURL == "" && bannerURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "icon or banner file required"})
		}

		if err := guilds.SetGuildImages(guildID, iconURL, bannerURL); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "icon": iconURL, "banner": bannerURL})
	})
}

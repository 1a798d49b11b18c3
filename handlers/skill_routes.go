package handlers

import (
	"study-guild-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSkillRoutes(app *fiber.App, enrollments *services.EnrollmentService, userCtx fiber.Handler) {
	app.Get("/skills", func(c *fiber.Ctx) error {
		skills, err := enrollments.ListSkills()
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(skills)
	})

	app.Get("/skills/category/:category", func(c *fiber.Ctx) error {
		skills, err := enrollments.ListSkillsByCategory(c.Params("category"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(skills)
	})

	app.Get("/skills/:id/courses", func(c *fiber.Ctx) error {
		courses, err := enrollments.ListCoursesBySkill(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(courses)
	})

	secured := app.Group("/", userCtx)

	secured.Post("/skills/:id/enroll", func(c *fiber.Ctx) error {
		enrollment, err := enrollments.EnrollSkill(currentUserID(c), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": enrollment.ID, "success": true})
	})

	secured.Get("/user/skills", func(c *fiber.Ctx) error {
		list, err := enrollments.ListUserSkills(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	secured.Post("/courses/:id/enroll", func(c *fiber.Ctx) error {
		enrollment, err := enrollments.EnrollCourse(currentUserID(c), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": enrollment.ID, "success": true})
	})

	secured.Patch("/courses/:id/progress", func(c *fiber.Ctx) error {
		var req struct {
			Progress int `json:"progress"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if err := enrollments.UpdateCourseProgress(currentUserID(c), c.Params("id"), req.Progress); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	secured.Get("/user/courses", func(c *fiber.Ctx) error {
		list, err := enrollments.ListUserCourseEnrollments(currentUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})
}

// handlers/achievements.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studyquest/store"
)

// GetAchievements lists achievements; hidden ones only with
// ?includeHidden=true.
func (a *API) GetAchievements(c *fiber.Ctx) error {
	includeHidden := c.QueryBool("includeHidden", false)

	achievements := a.store.GetAchievements(includeHidden)

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(achievements),
	})
}

func (a *API) CreateAchievement(c *fiber.Ctx) error {
	var params store.CreateAchievementParams
	if err := c.BodyParser(&params); err != nil {
		return badRequest(c, "Invalid request body")
	}

	achievement, err := a.store.CreateAchievement(params)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"achievement": achievement,
	})
}

func (a *API) GetUserAchievements(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if user := a.store.GetUser(id); user == nil {
		return notFound(c, "User not found")
	}

	earned, err := a.store.GetUserAchievements(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": earned,
		"unlocked":     len(earned),
	})
}

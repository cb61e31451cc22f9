// handlers/users.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studyquest/store"
)

func (a *API) CreateUser(c *fiber.Ctx) error {
	var params store.CreateUserParams
	if err := c.BodyParser(&params); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := a.store.CreateUser(params)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (a *API) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user := a.store.GetUser(id)
	if user == nil {
		return notFound(c, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (a *API) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var patch store.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := a.store.UpdateUser(id, patch)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (a *API) GetProgression(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	progression, err := a.store.Progression(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"progression": progression,
	})
}

func (a *API) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	entries := a.store.GetLeaderboard(limit)

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
		"limit":       limit,
	})
}

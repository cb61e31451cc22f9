// handlers/tests.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studyquest/store"
)

type completeTestRequest struct {
	Score int `json:"score"`
}

func (a *API) CreateTest(c *fiber.Ctx) error {
	var params store.CreateTestParams
	if err := c.BodyParser(&params); err != nil {
		return badRequest(c, "Invalid request body")
	}

	test, err := a.store.CreateTest(params)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"test":    test,
	})
}

func (a *API) GetTest(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid test id")
	}

	test := a.store.GetTest(id)
	if test == nil {
		return notFound(c, "Test not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"test":    test,
	})
}

// GetTests filters by userId, subjectId and completed query parameters; an
// absent parameter matches everything.
func (a *API) GetTests(c *fiber.Ctx) error {
	var filter store.TestFilter

	if v := c.QueryInt("userId", -1); v > 0 {
		id := uint(v)
		filter.CreatedBy = &id
	}
	if v := c.QueryInt("subjectId", -1); v > 0 {
		id := uint(v)
		filter.SubjectID = &id
	}
	if v := c.Query("completed"); v != "" {
		completed := v == "true" || v == "1"
		filter.Completed = &completed
	}

	tests := a.store.GetTests(filter)

	return c.JSON(fiber.Map{
		"success": true,
		"tests":   tests,
		"total":   len(tests),
	})
}

func (a *API) UpdateTest(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid test id")
	}

	var patch store.TestPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	test, err := a.store.UpdateTest(id, patch)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"test":    test,
	})
}

func (a *API) CompleteTest(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid test id")
	}

	var req completeTestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	test, err := a.store.CompleteTest(id, req.Score)
	if err != nil {
		return fail(c, err)
	}

	response := fiber.Map{
		"success": true,
		"test":    test,
	}

	// Completion may have moved the owner's progression; include the fresh
	// state when the owner exists.
	if user := a.store.GetUser(test.CreatedBy); user != nil {
		response["user"] = user
	}

	return c.JSON(response)
}

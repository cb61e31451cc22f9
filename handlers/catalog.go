// handlers/catalog.go - Subjects and textbooks
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studyquest/store"
)

func (a *API) GetSubjects(c *fiber.Ctx) error {
	subjects := a.store.GetSubjects()

	return c.JSON(fiber.Map{
		"success":  true,
		"subjects": subjects,
	})
}

func (a *API) CreateSubject(c *fiber.Ctx) error {
	var params store.CreateSubjectParams
	if err := c.BodyParser(&params); err != nil {
		return badRequest(c, "Invalid request body")
	}

	subject, err := a.store.CreateSubject(params)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"subject": subject,
	})
}

func (a *API) GetTextbooks(c *fiber.Ctx) error {
	var subjectID *uint
	if v := c.QueryInt("subjectId", -1); v > 0 {
		id := uint(v)
		subjectID = &id
	}

	textbooks := a.store.GetTextbooks(subjectID)

	return c.JSON(fiber.Map{
		"success":   true,
		"textbooks": textbooks,
	})
}

func (a *API) CreateTextbook(c *fiber.Ctx) error {
	var params store.CreateTextbookParams
	if err := c.BodyParser(&params); err != nil {
		return badRequest(c, "Invalid request body")
	}

	textbook, err := a.store.CreateTextbook(params)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"textbook": textbook,
	})
}

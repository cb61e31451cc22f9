// handlers/api.go - HTTP binding over the progress store
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studyquest/store"
)

// API is the thin HTTP pass-through: parse request, call the store, serialize
// the result with the store's field names. It holds the store instance rather
// than a package singleton so every test can build a fresh one.
type API struct {
	store *store.Store
}

func New(s *store.Store) *API {
	return &API{store: s}
}

// RegisterRoutes mounts all API routes under /api.
func (a *API) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// User routes
	api.Post("/users", a.CreateUser)
	api.Get("/users/:id", a.GetUser)
	api.Put("/users/:id", a.UpdateUser)
	api.Get("/users/:id/achievements", a.GetUserAchievements)
	api.Get("/users/:id/progression", a.GetProgression)

	// Reference data routes
	api.Get("/subjects", a.GetSubjects)
	api.Post("/subjects", a.CreateSubject)
	api.Get("/textbooks", a.GetTextbooks)
	api.Post("/textbooks", a.CreateTextbook)
	api.Get("/achievements", a.GetAchievements)
	api.Post("/achievements", a.CreateAchievement)

	// Test routes
	api.Post("/tests", a.CreateTest)
	api.Get("/tests", a.GetTests)
	api.Get("/tests/:id", a.GetTest)
	api.Put("/tests/:id", a.UpdateTest)
	api.Post("/tests/:id/complete", a.CompleteTest)

	// Leaderboard routes
	api.Get("/leaderboard", a.GetLeaderboard)
}

// fail maps store errors onto HTTP statuses: validation 400, not found 404,
// anything else (including integrity faults) 500.
func fail(c *fiber.Ctx, err error) error {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   ve.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

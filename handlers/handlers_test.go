package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/handlers"
	"studyquest/store"
)

func newTestApp() (*fiber.App, *store.Store) {
	s := store.NewStore()
	app := fiber.New()
	handlers.New(s).RegisterRoutes(app)
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]interface{}) {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	request := httptest.NewRequest(method, path, buf)
	request.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(request)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestCreateAndGetUser(t *testing.T) {
	app, _ := newTestApp()

	status, result := doJSON(t, app, "POST", "/api/users", map[string]any{
		"username": "alice",
		"password": "secret",
		"name":     "Alice",
	})
	require.Equal(t, fiber.StatusCreated, status)
	user := result["user"].(map[string]interface{})
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, float64(1), user["level"])
	assert.Equal(t, float64(0), user["points"])
	// The credential never leaves the store.
	assert.NotContains(t, user, "password")

	status, result = doJSON(t, app, "GET", "/api/users/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", result["user"].(map[string]interface{})["username"])

	// Duplicate username is a validation error.
	status, _ = doJSON(t, app, "POST", "/api/users", map[string]any{
		"username": "alice",
		"password": "other",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, "GET", "/api/users/99", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCompletionFlow(t *testing.T) {
	app, _ := newTestApp()

	status, _ := doJSON(t, app, "POST", "/api/users", map[string]any{
		"username": "alice",
		"password": "secret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, result := doJSON(t, app, "GET", "/api/subjects", nil)
	require.Equal(t, fiber.StatusOK, status)
	subjects := result["subjects"].([]interface{})
	require.Len(t, subjects, 5)
	mathID := subjects[0].(map[string]interface{})["id"].(float64)

	status, result = doJSON(t, app, "POST", "/api/textbooks", map[string]any{
		"title":     "Algebra I",
		"subjectId": mathID,
	})
	require.Equal(t, fiber.StatusCreated, status)
	textbookID := result["textbook"].(map[string]interface{})["id"].(float64)

	status, result = doJSON(t, app, "POST", "/api/tests", map[string]any{
		"title":         "Algebra midterm",
		"createdBy":     1,
		"subjectId":     mathID,
		"textbookId":    textbookID,
		"pagesFrom":     1,
		"pagesTo":       30,
		"questionCount": 20,
	})
	require.Equal(t, fiber.StatusCreated, status)
	test := result["test"].(map[string]interface{})
	testID := test["id"].(float64)
	assert.Equal(t, false, test["isCompleted"])
	assert.Nil(t, test["score"])

	status, result = doJSON(t, app, "POST", fmt.Sprintf("/api/tests/%.0f/complete", testID), map[string]any{
		"score": 80,
	})
	require.Equal(t, fiber.StatusOK, status)
	test = result["test"].(map[string]interface{})
	assert.Equal(t, true, test["isCompleted"])
	assert.Equal(t, float64(80), test["score"])
	user := result["user"].(map[string]interface{})
	assert.Equal(t, float64(800), user["points"])

	// Second completion is rejected and awards nothing further.
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/api/tests/%.0f/complete", testID), map[string]any{
		"score": 100,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, result = doJSON(t, app, "GET", "/api/users/1/achievements", nil)
	require.Equal(t, fiber.StatusOK, status)
	earned := result["achievements"].([]interface{})
	require.NotEmpty(t, earned)
	assert.Equal(t, "Getting Started", earned[0].(map[string]interface{})["name"])

	status, result = doJSON(t, app, "GET", "/api/users/1/progression", nil)
	require.Equal(t, fiber.StatusOK, status)
	progression := result["progression"].(map[string]interface{})
	assert.Equal(t, float64(800), progression["points"])
	assert.Equal(t, float64(1), progression["testsCompleted"])

	status, result = doJSON(t, app, "GET", "/api/leaderboard", nil)
	require.Equal(t, fiber.StatusOK, status)
	leaderboard := result["leaderboard"].([]interface{})
	require.Len(t, leaderboard, 1)
	top := leaderboard[0].(map[string]interface{})
	assert.Equal(t, float64(1), top["rank"])
	assert.Equal(t, "alice", top["username"])
	assert.Equal(t, float64(800), top["points"])
}

func TestTestValidationStatuses(t *testing.T) {
	app, _ := newTestApp()

	doJSON(t, app, "POST", "/api/users", map[string]any{
		"username": "alice",
		"password": "secret",
	})

	status, _ := doJSON(t, app, "POST", "/api/tests", map[string]any{
		"title":         "Bad",
		"createdBy":     1,
		"pagesFrom":     9,
		"pagesTo":       5,
		"questionCount": 10,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, "POST", "/api/tests", map[string]any{
		"title":         "Bad",
		"createdBy":     1,
		"pagesFrom":     1,
		"pagesTo":       5,
		"questionCount": 99,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, "POST", "/api/tests/99/complete", map[string]any{"score": 50})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "POST", "/api/tests/abc/complete", map[string]any{"score": 50})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHiddenAchievementListing(t *testing.T) {
	app, _ := newTestApp()

	status, result := doJSON(t, app, "GET", "/api/achievements", nil)
	require.Equal(t, fiber.StatusOK, status)
	visible := result["achievements"].([]interface{})
	assert.Len(t, visible, 4)
	for _, raw := range visible {
		assert.NotEqual(t, "Ultimate Scholar", raw.(map[string]interface{})["name"])
	}

	status, result = doJSON(t, app, "GET", "/api/achievements?includeHidden=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	all := result["achievements"].([]interface{})
	assert.Len(t, all, 5)
}

func TestTestsFilterQuery(t *testing.T) {
	app, s := newTestApp()

	alice, err := s.CreateUser(store.CreateUserParams{Username: "alice", Password: "x"})
	require.NoError(t, err)
	bob, err := s.CreateUser(store.CreateUserParams{Username: "bob", Password: "x"})
	require.NoError(t, err)

	for _, owner := range []uint{alice.ID, alice.ID, bob.ID} {
		_, err := s.CreateTest(store.CreateTestParams{
			Title: "t", CreatedBy: owner, SubjectID: 1,
			PagesFrom: 1, PagesTo: 5, QuestionCount: 10,
		})
		require.NoError(t, err)
	}
	_, err = s.CompleteTest(1, 75)
	require.NoError(t, err)

	status, result := doJSON(t, app, "GET", fmt.Sprintf("/api/tests?userId=%d", alice.ID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), result["total"])

	status, result = doJSON(t, app, "GET", "/api/tests?completed=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), result["total"])
}

func TestUpdateUserEndpoint(t *testing.T) {
	app, _ := newTestApp()

	doJSON(t, app, "POST", "/api/users", map[string]any{
		"username": "alice",
		"password": "secret",
	})

	status, result := doJSON(t, app, "PUT", "/api/users/1", map[string]any{
		"name": "Alice B",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Alice B", result["user"].(map[string]interface{})["name"])

	status, _ = doJSON(t, app, "PUT", "/api/users/99", map[string]any{"name": "X"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

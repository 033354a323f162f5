package utils_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/utils"
)

func decodeEnvelope(t *testing.T, app *fiber.App, path string) (int, utils.APIResponse) {
	t.Helper()

	response, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return response.StatusCode, envelope
}

func TestSendSuccess(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "done", fiber.Map{"id": 1})
	})
	app.Get("/default-message", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", nil)
	})

	status, envelope := decodeEnvelope(t, app, "/ok")
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, envelope.Success)
	require.Equal(t, "done", envelope.Message)
	require.NotNil(t, envelope.Data)

	status, envelope = decodeEnvelope(t, app, "/default-message")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "success", envelope.Message)
}

func TestSendSuccessWithStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "created", nil)
	})

	status, envelope := decodeEnvelope(t, app, "/created")
	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, envelope.Success)
}

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid input")
	})
	app.Get("/default-message", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusInternalServerError, "")
	})

	status, envelope := decodeEnvelope(t, app, "/bad")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.False(t, envelope.Success)
	require.Equal(t, "invalid input", envelope.Message)

	status, envelope = decodeEnvelope(t, app, "/default-message")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "error", envelope.Message)
}

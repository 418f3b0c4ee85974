package dto

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, "facility created", "Facility", fiber.Map{"name": "Silvergrove"})
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "facility created", body["Message"])
	assert.Equal(t, float64(ResultSuccess), body["ResultCode"])
	require.Contains(t, body, "Facility")
}

func TestSuccessWithoutPayload(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusOK, "logged out", "", nil)
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body, 2)
}

func TestSuccessMapEnvelope(t *testing.T) {
	_, body := performRequest(t, func(c *fiber.Ctx) error {
		return SuccessMap(c, fiber.StatusOK, "reports fetched", fiber.Map{
			"Reports": []string{},
			"Total":   0,
		})
	})

	assert.Equal(t, "reports fetched", body["Message"])
	require.Contains(t, body, "Reports")
	require.Contains(t, body, "Total")
}

func TestFailureEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return Failure(c, fiber.StatusConflict, "you have already reported this content")
	})

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "you have already reported this content", body["Message"])
	assert.Equal(t, float64(ResultFailure), body["ResultCode"])
}

package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(production bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(production)})
	app.Get("/operational", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	})
	app.Get("/unexpected", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})
	app.Use(NotFound)
	return app
}

func bodyOf(t *testing.T, resp io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestOperationalErrorSurfacesVerbatim(t *testing.T) {
	app := errorApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/operational", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := bodyOf(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "order not found", body["message"])
}

func TestUnexpectedErrorSanitizedInProduction(t *testing.T) {
	app := errorApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/unexpected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := bodyOf(t, resp.Body)
	assert.Equal(t, "something went wrong", body["message"])
}

func TestUnexpectedErrorDetailedInDevelopment(t *testing.T) {
	app := errorApp(false)

	resp, err := app.Test(httptest.NewRequest("GET", "/unexpected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := bodyOf(t, resp.Body)
	assert.Equal(t, "pq: connection refused", body["message"])
}

func TestUnmatchedRouteBecomesOperationalNotFound(t *testing.T) {
	app := errorApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/no/such/route", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := bodyOf(t, resp.Body)
	assert.Contains(t, body["message"], "/no/such/route")
}

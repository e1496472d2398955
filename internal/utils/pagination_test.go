package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOn(t *testing.T, target string) (Pagination, string) {
	t.Helper()

	var pg Pagination
	var sort string

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		pg = ParsePagination(c)
		sort = ParseSort(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	return pg, sort
}

func TestParsePaginationDefaults(t *testing.T) {
	pg, _ := parseOn(t, "/")
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, 20, pg.Limit)
	assert.Equal(t, 0, pg.Offset)
}

func TestParsePaginationSkipsPreviousPages(t *testing.T) {
	pg, _ := parseOn(t, "/?page=2&limit=10")
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 10, pg.Limit)
	assert.Equal(t, 10, pg.Offset)
}

func TestParsePaginationRejectsNonsense(t *testing.T) {
	pg, _ := parseOn(t, "/?page=-3&limit=abc")
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, 20, pg.Limit)
	assert.Equal(t, 0, pg.Offset)
}

func TestParseSort(t *testing.T) {
	_, sort := parseOn(t, "/?sort=price&order=asc")
	assert.Equal(t, "price asc", sort)

	_, sort = parseOn(t, "/?sort=price")
	assert.Equal(t, "price desc", sort)

	// Unknown columns must never reach SQL
	_, sort = parseOn(t, "/?sort=password_hash;drop&order=asc")
	assert.Equal(t, "created_at asc", sort)

	_, sort = parseOn(t, "/")
	assert.Equal(t, "created_at desc", sort)
}

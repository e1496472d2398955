package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("limit", "20"), 20)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// sortColumns is the whitelist of sortable product fields. Anything else
// falls back to created_at so the column name never reaches SQL unchecked.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"price":      "price",
	"name":       "name",
}

// ParseSort reads sort and order query params and returns a safe ORDER BY
// clause fragment.
func ParseSort(c *fiber.Ctx) string {
	column, ok := sortColumns[c.Query("sort", "created_at")]
	if !ok {
		column = "created_at"
	}

	direction := "desc"
	if c.Query("order") == "asc" {
		direction = "asc"
	}

	return column + " " + direction
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}

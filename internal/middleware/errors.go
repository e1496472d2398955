package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the terminal error formatter. Operational errors
// (*fiber.Error) surface their status and message verbatim. Anything else
// is logged and returned as a 500, with the underlying message hidden in
// production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)

		message := "something went wrong"
		if !production {
			message = err.Error()
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}

// NotFound converts unmatched routes into an operational 404.
func NotFound(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, "route "+c.OriginalURL()+" not found")
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// KeyValidator reports whether a partner API key is known and not revoked.
type KeyValidator func(key string) (bool, error)

// RequireAPIKey gates the partner surface. The key is read from the
// X-API-Key header or the api_key query parameter. A valid key lets the
// request through as a trusted but unauthenticated caller.
func RequireAPIKey(validate KeyValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}

		if key == "" {
			return fiber.NewError(fiber.StatusUnauthorized,
				"API key is required. Provide it in X-API-Key header or api_key query parameter")
		}

		valid, err := validate(key)
		if err != nil {
			return err
		}
		if !valid {
			return fiber.NewError(fiber.StatusForbidden, "invalid API key")
		}

		return c.Next()
	}
}

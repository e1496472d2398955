package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SahilGarg15/StyleHub/internal/config"
	"github.com/SahilGarg15/StyleHub/internal/utils"
)

const identityContextKey = "currentIdentity"

// Protect validates the token and loads the caller's identity into context.
// The token is read from the Authorization header or the token cookie.
func Protect(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "you are not logged in")
		}

		identity, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(identityContextKey, identity)
		return c.Next()
	}
}

// OptionalAuth loads the caller's identity when a valid token is present
// but never rejects the request. Guest checkout and guest reviews rely on
// this to attach a user only when one is known.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := extractToken(c); token != "" {
			if identity, err := utils.ParseToken(cfg.JWTSecret, token); err == nil {
				c.Locals(identityContextKey, identity)
			}
		}
		return c.Next()
	}
}

// RestrictTo rejects callers whose role is not in the allowed set.
func RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "you are not logged in")
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "you do not have permission to perform this action")
	}
}

// GetIdentity extracts the authenticated identity from context.
func GetIdentity(c *fiber.Ctx) (utils.Identity, bool) {
	value := c.Locals(identityContextKey)
	if value == nil {
		return utils.Identity{}, false
	}

	if identity, ok := value.(utils.Identity); ok {
		return identity, true
	}

	return utils.Identity{}, false
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return c.Cookies("token")
}

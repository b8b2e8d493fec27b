package middleware

import (
	"errors"
	"strings"

	"restaurant_site/constants"
	"restaurant_site/helper"
	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected accepts the access token from the access_token cookie or an
// Authorization: Bearer header and stores its claims in Locals("claims").
func Protected(tokens *helper.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		claim, err := tokens.ParseAccess(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("claims", claim)
		return c.Next()
	}
}

// RequireAdmin must run after Protected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := Claims(c)
		if !ok || claim.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, nil)
		}
		return c.Next()
	}
}

func Claims(c *fiber.Ctx) (model.TokenClaim, bool) {
	claim, ok := c.Locals("claims").(model.TokenClaim)
	return claim, ok
}

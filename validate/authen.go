package validate

import (
	"restaurant_site/model"

	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.LoginInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.ChangePasswordInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.UpdateProfileInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

package validate

import (
	"restaurant_site/model"

	"github.com/gofiber/fiber/v2"
)

// CreateMenuItem accepts JSON or multipart form data. An optional image file
// is read by the handler.
func CreateMenuItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.CreateMenuItemInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateMenuItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.UpdateMenuItemInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

package validate

import (
	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.CreateEventInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.UpdateEventInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

// EventFilter parses the list query and stores it in Locals("filter").
func EventFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter model.EventFilter
		if err := c.QueryParser(&filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if fields := Fields(filter); len(fields) > 0 {
			return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, fields)
		}
		c.Locals("filter", filter)
		return c.Next()
	}
}

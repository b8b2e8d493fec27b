package validate

import (
	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

func SyncReservations() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SyncReservationsInput
		if len(c.Body()) > 0 {
			parsed, ok, err := body[model.SyncReservationsInput](c)
			if !ok {
				return err
			}
			input = parsed
		}
		c.Locals("input", input)
		return c.Next()
	}
}

// QueryDate requires ?date=YYYY-MM-DD and stores it in Locals("date").
func QueryDate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Query("date")
		if _, err := utils.ParseDate(date); err != nil {
			return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, map[string]string{"date": "datetime"})
		}
		c.Locals("date", date)
		return c.Next()
	}
}

package validate

import (
	"errors"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

func UpdateTheme() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.ThemeUpdateInput](c)
		if !ok {
			return err
		}
		if len(input.Colors) == 0 && len(input.Images) == 0 && len(input.TextContent) == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("nothing to update"))
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpsertSiteSetting() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.UpsertSiteSettingInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func SetFeature() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.SetFeatureInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpsertEditable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok, err := body[model.UpsertEditableElementInput](c)
		if !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

type bucketParam struct {
	Bucket string `json:"bucket" validate:"required,bucket"`
}

// Bucket checks the :bucket route parameter.
func Bucket(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := bucketParam{Bucket: c.Params(key)}
		if fields := Fields(p); len(fields) > 0 {
			return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, fields)
		}
		c.Locals("bucket", p.Bucket)
		return c.Next()
	}
}

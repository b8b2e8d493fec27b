package handler

import (
	"errors"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

// GetSiteSettings lists typed settings, optionally filtered by ?type=.
func (h *Handler) GetSiteSettings(c *fiber.Ctx) error {
	t := c.Query("type")
	if t != "" && t != constants.SETTING_TYPE_COLORS && t != constants.SETTING_TYPE_IMAGES {
		return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, map[string]string{"type": "oneof"})
	}
	rows, err := h.settings.List(c.UserContext(), t)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

func (h *Handler) UpsertSiteSetting(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpsertSiteSettingInput)
	setting := model.SiteSetting{Key: input.Key, Value: input.Value, Type: input.Type}
	if err := h.settings.Upsert(c.UserContext(), &setting); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, setting)
}

func (h *Handler) DeleteSiteSetting(c *fiber.Ctx) error {
	err := h.settings.Delete(c.UserContext(), inputId(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": 1})
}

package handler

import (
	"strconv"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetFeatures(c *fiber.Ctx) error {
	rows, err := h.features.List(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// GetFeature reads one flag. Unknown flags are reported disabled.
func (h *Handler) GetFeature(c *fiber.Ctx) error {
	f, err := h.features.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, f)
}

func (h *Handler) SetFeature(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SetFeatureInput)
	name := c.Params("name")
	f, err := h.features.Set(c.UserContext(), name, *input.Enabled)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	h.publish(c.UserContext(), constants.CHANNEL_FEATURES, name+"="+strconv.FormatBool(f.Enabled))
	return utils.SuccessResponse(c, fiber.StatusOK, f)
}

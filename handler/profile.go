package handler

import (
	"errors"

	"restaurant_site/constants"
	"restaurant_site/middleware"
	"restaurant_site/model"
	"restaurant_site/profile"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	claim, _ := middleware.Claims(c)
	data, err := h.profiles.Load(c.UserContext(), claim.AccountId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, data)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	claim, _ := middleware.Claims(c)
	input := c.Locals("input").(model.UpdateProfileInput)

	var data profile.Data
	if err := copier.Copy(&data, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	res, err := h.profiles.Save(c.UserContext(), claim.AccountId, data)
	if errors.Is(err, profile.ErrPartialSave) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": constants.PROFILE_PARTIAL_SAVED,
			"error":   err.Error(),
			"result":  res,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": constants.ERROR_INTERNAL_ERROR,
			"error":   err.Error(),
			"result":  res,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"profile": data,
		"result":  res,
	})
}

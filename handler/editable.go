package handler

import (
	"errors"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

// GetEditableElements returns the overrides for ?page=.
func (h *Handler) GetEditableElements(c *fiber.Ctx) error {
	page := c.Query("page")
	if page == "" {
		return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, map[string]string{"page": "required"})
	}
	rows, err := h.editable.ListByPage(c.UserContext(), page)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// customizationEnabled answers 403 itself when in-place editing is off.
func (h *Handler) customizationEnabled(c *fiber.Ctx) (bool, error) {
	f, err := h.features.Get(c.UserContext(), constants.FEATURE_CUSTOMIZATION)
	if err != nil {
		return false, utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !f.Enabled {
		return false, utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, errors.New("customization is disabled"))
	}
	return true, nil
}

func (h *Handler) UpsertEditableElement(c *fiber.Ctx) error {
	if ok, err := h.customizationEnabled(c); !ok {
		return err
	}
	input := c.Locals("input").(model.UpsertEditableElementInput)
	el := model.EditableElement{PagePath: input.PagePath, ElementID: input.ElementID, Content: input.Content}
	if err := h.editable.Upsert(c.UserContext(), &el); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, el)
}

func (h *Handler) DeleteEditableElement(c *fiber.Ctx) error {
	if ok, err := h.customizationEnabled(c); !ok {
		return err
	}
	err := h.editable.Delete(c.UserContext(), inputId(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": 1})
}

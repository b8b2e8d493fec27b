package handler

import (
	"errors"
	"slices"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// GetMenu returns the carte grouped by category unless ?flat=true.
func (h *Handler) GetMenu(c *fiber.Ctx) error {
	filter := new(model.MenuFilter)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	items, err := h.menu.List(c.UserContext(), *filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if c.QueryBool("flat") {
		return utils.SuccessResponse(c, fiber.StatusOK, items)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, groupMenu(items))
}

func groupMenu(items []model.MenuItem) []model.MenuSection {
	sections := make([]model.MenuSection, 0, len(constants.MenuCategories))
	for _, cat := range constants.MenuCategories {
		section := model.MenuSection{Categorie: cat, Items: []model.MenuItem{}}
		for _, it := range items {
			if it.Categorie == cat {
				section.Items = append(section.Items, it)
			}
		}
		if len(section.Items) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}

func (h *Handler) GetMenuItem(c *fiber.Ctx) error {
	item, err := h.menu.FindByID(c.UserContext(), inputId(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) CreateMenuItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMenuItemInput)

	var item model.MenuItem
	if err := copier.Copy(&item, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	obj, err := h.formImage(c, constants.BUCKET_SITE_IMAGES)
	if err != nil {
		return uploadError(c, err)
	}
	if obj != nil {
		item.ImageUrl = utils.Ptr(obj.URL)
		item.ImagePublicID = utils.Ptr(obj.PublicID)
	}

	if err := h.menu.Create(c.UserContext(), &item); err != nil {
		h.discard(c, item.ImagePublicID)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateMenuItemInput)

	item, err := h.menu.FindByID(c.UserContext(), inputId(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	oldPublicID := item.ImagePublicID

	if input.Categorie != nil {
		item.Categorie = *input.Categorie
	}
	if input.Nom != nil {
		item.Nom = *input.Nom
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Prix != nil {
		item.Prix = *input.Prix
	}
	if input.IsVegan != nil {
		item.IsVegan = *input.IsVegan
	}
	if input.IsSpicy != nil {
		item.IsSpicy = *input.IsSpicy
	}
	if input.IsPeanutFree != nil {
		item.IsPeanutFree = *input.IsPeanutFree
	}
	if input.IsGlutenFree != nil {
		item.IsGlutenFree = *input.IsGlutenFree
	}
	replaced := false
	if input.ImageUrl != nil {
		item.ImageUrl = input.ImageUrl
		item.ImagePublicID = nil
		replaced = true
	}

	obj, err := h.formImage(c, constants.BUCKET_SITE_IMAGES)
	if err != nil {
		return uploadError(c, err)
	}
	if obj != nil {
		item.ImageUrl = utils.Ptr(obj.URL)
		item.ImagePublicID = utils.Ptr(obj.PublicID)
		replaced = true
	}

	if err := h.menu.Save(c.UserContext(), item); err != nil {
		if obj != nil {
			h.discard(c, item.ImagePublicID)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if replaced {
		h.discard(c, oldPublicID)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) DeleteMenuItems(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	items, err := h.menu.FindByIDs(c.UserContext(), input.IDs)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(items) != len(slices.Compact(slices.Sorted(slices.Values(input.IDs)))) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, errors.New("some menu items do not exist"))
	}
	n, err := h.menu.Delete(c.UserContext(), input.IDs)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	for _, it := range items {
		h.discard(c, it.ImagePublicID)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": n})
}

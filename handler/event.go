package handler

import (
	"errors"
	"slices"
	"strconv"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

// GetEvents lists events; ?when=past|upcoming|all, relative to today.
func (h *Handler) GetEvents(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.EventFilter)
	rows, total, err := h.eventRepo.List(c.UserContext(), filter, h.today())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       rows,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	})
}

// GetEvent accepts either a numeric id or a slug.
func (h *Handler) GetEvent(c *fiber.Ctx) error {
	key := c.Params("key")
	var (
		event *model.Event
		err   error
	)
	if id, convErr := strconv.ParseUint(key, 10, 64); convErr == nil {
		event, err = h.eventRepo.FindByID(c.UserContext(), uint(id))
	} else {
		event, err = h.eventRepo.FindBySlug(c.UserContext(), key)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEventInput)

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, map[string]string{"date": "datetime"})
	}
	event := model.Event{
		Date:        date,
		Titre:       input.Titre,
		Description: input.Description,
		ImageUrl:    input.ImageUrl,
	}
	obj, err := h.formImage(c, constants.BUCKET_EVENT_IMAGES)
	if err != nil {
		return uploadError(c, err)
	}
	if obj != nil {
		event.ImageUrl = utils.Ptr(obj.URL)
		event.ImagePublicID = utils.Ptr(obj.PublicID)
	}

	if err := h.eventRepo.Create(c.UserContext(), &event); err != nil {
		h.discard(c, event.ImagePublicID)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateEventInput)

	event, err := h.eventRepo.FindByID(c.UserContext(), inputId(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	oldPublicID := event.ImagePublicID

	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, map[string]string{"date": "datetime"})
		}
		event.Date = date
	}
	if input.Titre != nil && *input.Titre != event.Titre {
		event.Titre = *input.Titre
		slug, err := h.eventRepo.UniqueSlug(c.UserContext(), event.Titre, event.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		event.Slug = slug
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	replaced := false
	if input.ImageUrl != nil {
		event.ImageUrl = input.ImageUrl
		event.ImagePublicID = nil
		replaced = true
	}

	obj, err := h.formImage(c, constants.BUCKET_EVENT_IMAGES)
	if err != nil {
		return uploadError(c, err)
	}
	if obj != nil {
		event.ImageUrl = utils.Ptr(obj.URL)
		event.ImagePublicID = utils.Ptr(obj.PublicID)
		replaced = true
	}

	if err := h.eventRepo.Save(c.UserContext(), event); err != nil {
		if obj != nil {
			h.discard(c, event.ImagePublicID)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if replaced {
		h.discard(c, oldPublicID)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) DeleteEvents(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	events, err := h.eventRepo.FindByIDs(c.UserContext(), input.IDs)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(events) != len(slices.Compact(slices.Sorted(slices.Values(input.IDs)))) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, errors.New("some events do not exist"))
	}
	n, err := h.eventRepo.Delete(c.UserContext(), input.IDs)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	for _, ev := range events {
		h.discard(c, ev.ImagePublicID)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": n})
}

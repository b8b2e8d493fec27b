package handler

import (
	"errors"
	"log"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/theme"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetTheme(c *fiber.Ctx) error {
	if h.Theme.Stale() {
		if _, err := h.Theme.Load(c.UserContext()); err != nil {
			log.Printf("[theme] serving cached theme: %v", err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.Theme.Current())
}

// GetThemeCSS serves the theme as CSS custom properties.
func (h *Handler) GetThemeCSS(c *fiber.Ctx) error {
	if h.Theme.Stale() {
		if _, err := h.Theme.Load(c.UserContext()); err != nil {
			log.Printf("[theme] serving cached css: %v", err)
		}
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	return c.SendString(h.Theme.CSS())
}

func (h *Handler) UpdateTheme(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ThemeUpdateInput)

	err := h.Theme.Update(c.UserContext(), theme.Patch{
		Colors:      input.Colors,
		Images:      input.Images,
		TextContent: input.TextContent,
	})
	if errors.Is(err, theme.ErrUnknownField) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if errors.Is(err, theme.ErrPartialWrite) {
		h.publish(c.UserContext(), constants.CHANNEL_SITE_CONFIG, "partial")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	h.publish(c.UserContext(), constants.CHANNEL_SITE_CONFIG, "updated")
	return utils.SuccessResponse(c, fiber.StatusOK, h.Theme.Current())
}

// ReloadTheme drops the cached theme and reads it again.
func (h *Handler) ReloadTheme(c *fiber.Ctx) error {
	h.Theme.Invalidate()
	snap, err := h.Theme.Load(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, snap)
}

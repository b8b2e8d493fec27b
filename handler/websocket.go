package handler

import (
	"restaurant_site/constants"
	"restaurant_site/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeRealtime rejects anything that is not a websocket upgrade for a
// known channel.
func (h *Handler) UpgradeRealtime(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if !h.Hub.Allowed(c.Params("channel")) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, nil)
	}
	return c.Next()
}

// Realtime keeps a browser subscribed to one change feed channel.
func (h *Handler) Realtime() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.Hub.Serve(c.Params("channel"), c)
	})
}

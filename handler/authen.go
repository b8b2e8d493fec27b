package handler

import (
	"errors"
	"time"

	"restaurant_site/constants"
	"restaurant_site/helper"
	"restaurant_site/middleware"
	"restaurant_site/model"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) setSessionCookies(c *fiber.Ctx, access, refresh string) {
	secure := h.cfg.Env != "dev" && h.cfg.Env != "test"
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   secure,
		Path:     "/",
		Expires:  h.now().Add(helper.AccessTokenTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   secure,
		Path:     "/",
		Expires:  h.now().Add(helper.RefreshTokenTTL),
	})
}

func (h *Handler) issue(c *fiber.Ctx, acc *model.Account) error {
	claim := model.TokenClaim{AccountId: acc.ID, Username: acc.Username, Role: acc.Role}
	access, err := h.tokens.GenerateAccessToken(claim)
	if err != nil {
		return err
	}
	refresh, err := h.tokens.GenerateRefreshToken(claim)
	if err != nil {
		return err
	}
	h.setSessionCookies(c, access, refresh)
	c.Set("X-Access-Token", access)
	return nil
}

func (h *Handler) Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)

	acc, err := h.accounts.FindByUsername(c.UserContext(), input.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !helper.CheckPasswordHash(input.Password, acc.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}
	if !acc.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}
	if err := h.issue(c, acc); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "login success",
		"account": acc,
	})
}

func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	refreshCookie := c.Cookies("refresh_token")
	if refreshCookie == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "refresh token not found", nil)
	}
	claim, err := h.tokens.ParseRefresh(refreshCookie)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	acc, err := h.accounts.FindByID(c.UserContext(), claim.AccountId)
	if err != nil || !acc.Active {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ACCOUNT_NOT_ACTIVE, err)
	}
	if err := h.issue(c, acc); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "token refreshed"})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Path:     "/",
			Expires:  time.Unix(0, 0),
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "logout success"})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	claim, _ := middleware.Claims(c)
	acc, err := h.accounts.FindByID(c.UserContext(), claim.AccountId)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, acc)
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	claim, _ := middleware.Claims(c)
	input := c.Locals("input").(model.ChangePasswordInput)

	acc, err := h.accounts.FindByID(c.UserContext(), claim.AccountId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, acc.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, nil)
	}
	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := h.accounts.UpdatePassword(c.UserContext(), acc.ID, hash); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password changed"})
}

package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

type AuthHandler struct {
	service  *services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(service *services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{service: service, validate: validate}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Register(appID, &req)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "registered", "Auth", resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Login(appID, &req)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "logged in", "Auth", resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Refresh(appID, &req)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "token refreshed", "Auth", resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Logout(appID, &req); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "logged out", "", nil)
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteAccount(appID, userID, req.Password); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "account deleted", "", nil)
}

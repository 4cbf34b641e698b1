package handlers

import (
	"kudi/internal/services/auth"
	"kudi/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{auth: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" || len(input.Password) < 8 {
		return utils.BadRequest(c, "email and a password of at least 8 characters are required")
	}

	if err := h.auth.Register(c.Context(), input.Email, input.Password); err != nil {
		if err == auth.ErrInvalidCredentials {
			return utils.BadRequest(c, "Invalid credentials")
		}
		return utils.ServerError(c, "registration failed")
	}
	return utils.Success(c, "User registered. OTP sent to "+input.Email, nil)
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.auth.VerifyOTP(c.Context(), input.Email, input.Code); err != nil {
		if err == auth.ErrInvalidOTP {
			return utils.BadRequest(c, "Invalid or expired OTP")
		}
		return utils.ServerError(c, "verification failed")
	}
	return utils.Success(c, "Account verified", nil)
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.auth.ResendOTP(c.Context(), input.Email); err != nil {
		return utils.ServerError(c, "could not resend OTP")
	}
	return utils.Success(c, "If the account exists, an OTP has been sent", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	user, access, refresh, err := h.auth.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return utils.Unauthorized(c, "Invalid credentials")
		case auth.ErrNotVerified:
			return utils.Unauthorized(c, "Account is not verified")
		default:
			return utils.ServerError(c, "login failed")
		}
	}
	return utils.Success(c, "Logged in", fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

package utils

import (
	apperr "kudi/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// DomainFailure maps a DomainError code to its HTTP status and renders the
// structured failure envelope.
func DomainFailure(c *fiber.Ctx, err *apperr.DomainError) error {
	status := fiber.StatusBadRequest
	switch err.Code {
	case apperr.CodeInsufficientFunds, apperr.CodeSameCurrency:
		status = fiber.StatusForbidden
	case apperr.CodeRateUnavailable:
		status = fiber.StatusServiceUnavailable
	case apperr.CodePersistenceFailure:
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    err.Code,
		"message": err.Message,
	})
}

package api

import (
	"errors"

	"github.com/example/task-manager-api/domain/apperr"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Error codes written to ErrorResponse.Error.
const (
	CodeValidation   = "validation_error"
	CodeConflict     = "conflict"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeInternal     = "internal_error"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInvalidLimit  = "limit must not be negative"
	msgNoToken       = "No token provided"
	msgTokenRejected = "Failed to authenticate token"
	msgInternal      = "An internal error occurred"
)

// writeError maps a classified error to its HTTP status. Internal errors
// are logged and answered with a fixed message.
func writeError(c *fiber.Ctx, logger types.Logger, err error) error {
	appErr := apperr.From(err)

	var status int
	var code string
	switch appErr.Kind {
	case apperr.KindValidation:
		status, code = fiber.StatusBadRequest, CodeValidation
	case apperr.KindConflict:
		status, code = fiber.StatusConflict, CodeConflict
	case apperr.KindAuthentication:
		status, code = fiber.StatusUnauthorized, CodeUnauthorized
	case apperr.KindNotFound:
		status, code = fiber.StatusNotFound, CodeNotFound
	default:
		logger.Error("Request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   CodeInternal,
			Message: msgInternal,
		})
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: appErr.Message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   CodeValidation,
		Message: message,
	})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
		Error:   CodeForbidden,
		Message: message,
	})
}

// errorHandler handles errors returned from fiber itself, such as unknown
// routes and recovered panics.
func errorHandler(logger types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = CodeValidation
			case fiber.StatusMethodNotAllowed:
				code = "method_not_allowed"
			}
			return c.Status(fe.Code).JSON(ErrorResponse{
				Error:   code,
				Message: fe.Message,
			})
		}
		return writeError(c, logger, err)
	}
}

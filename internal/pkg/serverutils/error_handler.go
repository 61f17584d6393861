package serverutils

import (
	"errors"

	"chatrelay-be/internal/pkg/apperror"
	"chatrelay-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status. Session lookups that fail
// ownership answer 403, the remaining not-found cases 404.
func StatusFor(err *apperror.Error) int {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return fiber.StatusForbidden
	}

	switch err.Kind {
	case apperror.KindValidation, apperror.KindConflict:
		return fiber.StatusBadRequest
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders every error returned by a handler as the
// standard envelope. Internal causes are logged, never sent.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		status := StatusFor(appErr)
		if status == fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"error":  err,
				"method": ctx.Method(),
				"path":   ctx.Path(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
	"github.com/TRrajputDEV/Pixels-sub000/internal/service"
)

// serviceError maps a service error kind onto the API error envelope.
// Collaborator failures are logged and reported without detail.
func serviceError(c fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		log.Error().Err(err).Str("action", action).Msg("request failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+action)
	}
}

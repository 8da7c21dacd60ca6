package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/services"
)

// respondServiceError maps the service error taxonomy onto envelope
// codes. Unexpected errors are logged in full and reported opaquely.
func respondServiceError(ctx *fiber.Ctx, err error, fallback string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return utils.Fail(ctx, utils.CodeBadRequest, ve.Reason)
	case errors.Is(err, services.ErrLastAdmin):
		return utils.Fail(ctx, utils.CodeForbidden, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return utils.Fail(ctx, utils.CodeForbidden, "access denied")
	case errors.Is(err, services.ErrNotFound):
		return utils.Fail(ctx, utils.CodeNotFound, "record not found")
	case errors.Is(err, services.ErrConflict):
		return utils.Fail(ctx, utils.CodeConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Fail(ctx, utils.CodeUnauthorized, "invalid email or password")
	default:
		log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		return utils.Fail(ctx, utils.CodeInternalError, fallback)
	}
}

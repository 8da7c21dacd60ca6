package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/helper"
	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/repository"
)

const authUserKey = "authUser"

// CurrentUser returns the caller attached by AuthRequired.
func CurrentUser(ctx *fiber.Ctx) (dto.AuthUser, bool) {
	user, ok := ctx.Locals(authUserKey).(dto.AuthUser)
	return user, ok
}

// AuthRequired validates the bearer token, loads the user with its role
// and attaches it to the request context. A missing or malformed header
// answers inside the envelope; a failed signature/expiry check is the one
// case that answers with transport 401.
func AuthRequired(auth helper.Auth, users repository.UserRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := helper.ExtractToken(ctx.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return utils.Fail(ctx, utils.CodeUnauthorized, "missing authentication token")
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.FailAuthGate(ctx, "invalid authentication token")
		}

		user, err := users.FindUserByIDWithRole(claims.UserID)
		if err != nil || !user.Status {
			return utils.Fail(ctx, utils.CodeUnauthorized, "user missing or disabled")
		}

		ctx.Locals(authUserKey, dto.AuthUser{
			ID:           user.ID,
			Status:       user.Status,
			RoleID:       user.RoleID,
			IsAdmin:      user.Role.IsAdmin,
			IsSuperAdmin: user.Role.IsSuperAdmin,
		})
		return ctx.Next()
	}
}

// RequirePermission passes super-admins unconditionally; everyone else
// needs a role_menu grant to a menu carrying the permission code.
func RequirePermission(code string, menus repository.MenuRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := CurrentUser(ctx)
		if !ok {
			return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
		}
		if user.IsSuperAdmin {
			return ctx.Next()
		}

		granted, err := menus.RoleHasPermission(user.RoleID, code)
		if err != nil {
			log.Printf("permission check %q for role %d: %v", code, user.RoleID, err)
			return utils.Fail(ctx, utils.CodeInternalError, "permission check failed")
		}
		if !granted {
			return utils.Fail(ctx, utils.CodeForbidden, "access denied")
		}
		return ctx.Next()
	}
}

func AdminOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := CurrentUser(ctx)
		if !ok {
			return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
		}
		if !user.IsAdmin {
			return utils.Fail(ctx, utils.CodeForbidden, "admin access required")
		}
		return ctx.Next()
	}
}

func SuperAdminOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := CurrentUser(ctx)
		if !ok {
			return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
		}
		if !user.IsSuperAdmin {
			return utils.Fail(ctx, utils.CodeForbidden, "super-admin access required")
		}
		return ctx.Next()
	}
}

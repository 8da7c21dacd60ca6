package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/helper"
	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/services"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, authRequired, adminOnly fiber.Handler) {
	user := app.Group("/api/user")

	user.Post("/register", h.Register)
	user.Post("/login", h.Login)
	user.Get("/info", h.GetUserInfo)

	user.Get("/list", authRequired, h.ListUsers)
	user.Get("/roleList", authRequired, h.RoleList)
	user.Post("/delete", authRequired, adminOnly, h.DeleteUser)
	user.Post("/update-role", authRequired, adminOnly, h.UpdateUserRole)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var input dto.RegisterRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid request body")
	}

	result, err := h.svc.Register(input)
	if err != nil {
		return respondServiceError(ctx, err, "registration failed, please try again later")
	}
	return utils.Ok(ctx, result, "registration successful")
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var input dto.UserLogin
	if err := ctx.BodyParser(&input); err != nil {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid request body")
	}

	result, err := h.svc.Login(input)
	if err != nil {
		return respondServiceError(ctx, err, "login failed, please try again later")
	}
	return utils.Ok(ctx, result, "login successful")
}

// GetUserInfo resolves the caller from the bearer token directly; the
// route stays outside the auth middleware chain.
func (h *UserHandler) GetUserInfo(ctx *fiber.Ctx) error {
	tokenStr := helper.ExtractToken(ctx.Get(fiber.HeaderAuthorization))
	if tokenStr == "" {
		return utils.Fail(ctx, utils.CodeUnauthorized, "missing authentication token")
	}
	claims, err := h.auth.VerifyToken(tokenStr)
	if err != nil {
		return utils.Fail(ctx, utils.CodeUnauthorized, "invalid authentication token")
	}

	user, err := h.svc.GetUserInfo(claims.UserID)
	if err != nil {
		return respondServiceError(ctx, err, "failed to load user")
	}
	return utils.Ok(ctx, user, "user info retrieved")
}

func (h *UserHandler) ListUsers(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("pageSize", 10)
	keyword := ctx.Query("keyword")

	result, err := h.svc.ListUsers(page, pageSize, keyword)
	if err != nil {
		return respondServiceError(ctx, err, "failed to list users")
	}
	return utils.Ok(ctx, result, "user list retrieved")
}

func (h *UserHandler) RoleList(ctx *fiber.Ctx) error {
	roles, err := h.svc.ListRoles()
	if err != nil {
		return respondServiceError(ctx, err, "failed to list roles")
	}
	return utils.Ok(ctx, roles, "role list retrieved")
}

func (h *UserHandler) UpdateUserRole(ctx *fiber.Ctx) error {
	var input dto.UpdateRoleRequest
	if err := ctx.BodyParser(&input); err != nil || input.UserID == 0 || input.RoleID == 0 {
		return utils.Fail(ctx, utils.CodeBadRequest, "userId and roleId are required")
	}

	if err := h.svc.UpdateUserRole(input.UserID, input.RoleID); err != nil {
		return respondServiceError(ctx, err, "failed to update user role")
	}
	return utils.Ok(ctx, nil, "user role updated")
}

func (h *UserHandler) DeleteUser(ctx *fiber.Ctx) error {
	var input dto.DeleteUserRequest
	if err := ctx.BodyParser(&input); err != nil || input.ID == 0 {
		return utils.Fail(ctx, utils.CodeBadRequest, "user id is required")
	}

	if err := h.svc.DeleteUser(input.ID); err != nil {
		return respondServiceError(ctx, err, "failed to delete user")
	}
	return utils.Ok(ctx, nil, "user deleted")
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yangezz/paste_service/internal/api/rest/middleware"
	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/services"
)

type MenuHandler struct {
	svc services.MenuService
}

func NewMenuHandler(svc services.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) SetupRoutes(app *fiber.App, authRequired, superAdminOnly fiber.Handler) {
	menus := app.Group("/api/menus")

	menus.Get("/user", authRequired, h.GetUserMenus)
	menus.Get("/all", authRequired, superAdminOnly, h.GetAllMenus)
}

// GetUserMenus returns the caller's visible menus as a tree.
func (h *MenuHandler) GetUserMenus(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
	}

	tree, err := h.svc.GetUserMenus(user.RoleID)
	if err != nil {
		return respondServiceError(ctx, err, "failed to load menus")
	}
	return utils.Ok(ctx, tree, "menus retrieved")
}

func (h *MenuHandler) GetAllMenus(ctx *fiber.Ctx) error {
	tree, err := h.svc.GetAllMenus()
	if err != nil {
		return respondServiceError(ctx, err, "failed to load menus")
	}
	return utils.Ok(ctx, tree, "all menus retrieved")
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/services"
)

type ToolHandler struct {
	svc services.ToolService
}

func NewToolHandler(svc services.ToolService) *ToolHandler {
	return &ToolHandler{svc: svc}
}

func (h *ToolHandler) SetupRoutes(app *fiber.App, authRequired fiber.Handler) {
	tool := app.Group("/api/tool")

	tool.Get("/github_trending", authRequired, h.GithubTrending)
}

func (h *ToolHandler) GithubTrending(ctx *fiber.Ctx) error {
	repos, err := h.svc.TrendingRepos(ctx.UserContext(), ctx.Query("since", "daily"))
	if err != nil {
		return respondServiceError(ctx, err, "failed to fetch trending repositories")
	}
	return utils.Ok(ctx, repos, "trending repositories retrieved")
}

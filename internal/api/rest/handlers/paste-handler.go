package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yangezz/paste_service/internal/api/rest/middleware"
	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/services"
)

type PasteHandler struct {
	svc services.PasteService
}

func NewPasteHandler(svc services.PasteService) *PasteHandler {
	return &PasteHandler{svc: svc}
}

func (h *PasteHandler) SetupRoutes(app *fiber.App, authRequired fiber.Handler) {
	pastes := app.Group("/api/pastes", authRequired)

	pastes.Get("/public", h.GetPublicPastes)
	pastes.Get("/mine", h.GetMyPastes)
	pastes.Get("/detail/:id", h.GetPaste)
	pastes.Post("/create", h.CreatePaste)
	pastes.Put("/update/:id", h.UpdatePaste)
	pastes.Delete("/remove/:id", h.DeletePaste)
}

func (h *PasteHandler) CreatePaste(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
	}

	var input dto.CreatePasteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid request body")
	}

	paste, err := h.svc.CreatePaste(user.ID, input)
	if err != nil {
		return respondServiceError(ctx, err, "failed to create paste")
	}
	return utils.Ok(ctx, paste, "paste created")
}

func (h *PasteHandler) GetMyPastes(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
	}

	pastes, err := h.svc.GetMyPastes(user.ID)
	if err != nil {
		return respondServiceError(ctx, err, "failed to load pastes")
	}
	return utils.Ok(ctx, pastes, "pastes retrieved")
}

func (h *PasteHandler) GetPublicPastes(ctx *fiber.Ctx) error {
	pastes, err := h.svc.GetPublicPastes()
	if err != nil {
		return respondServiceError(ctx, err, "failed to load pastes")
	}
	return utils.Ok(ctx, pastes, "pastes retrieved")
}

func (h *PasteHandler) GetPaste(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
	}
	pasteID, err := ctx.ParamsInt("id")
	if err != nil || pasteID <= 0 {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid paste id")
	}

	paste, err := h.svc.GetPaste(uint(pasteID), user.ID)
	if err != nil {
		return respondServiceError(ctx, err, "failed to load paste")
	}
	return utils.Ok(ctx, paste, "paste retrieved")
}

func (h *PasteHandler) UpdatePaste(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
	}
	pasteID, err := ctx.ParamsInt("id")
	if err != nil || pasteID <= 0 {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid paste id")
	}

	var input dto.UpdatePasteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid request body")
	}

	paste, err := h.svc.UpdatePaste(uint(pasteID), user.ID, input)
	if err != nil {
		return respondServiceError(ctx, err, "failed to update paste")
	}
	return utils.Ok(ctx, paste, "paste updated")
}

func (h *PasteHandler) DeletePaste(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return utils.Fail(ctx, utils.CodeUnauthorized, "not logged in")
	}
	pasteID, err := ctx.ParamsInt("id")
	if err != nil || pasteID <= 0 {
		return utils.Fail(ctx, utils.CodeBadRequest, "invalid paste id")
	}

	if err := h.svc.DeletePaste(uint(pasteID), user.ID); err != nil {
		return respondServiceError(ctx, err, "failed to delete paste")
	}
	return utils.Ok(ctx, nil, "paste deleted")
}

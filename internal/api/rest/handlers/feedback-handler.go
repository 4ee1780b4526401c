package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/helper/utils"
	"github.com/bmxadventure/user_service/internal/services"
)

type FeedbackHandler struct {
	svc services.FeedbackService
	log *zap.SugaredLogger
}

func NewFeedbackHandler(svc services.FeedbackService, log *zap.SugaredLogger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, log: log}
}

func (h *FeedbackHandler) SetupRoutes(user fiber.Router) {
	user.Post("/feedback", h.Submit)
}

func (h *FeedbackHandler) Submit(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.FeedbackRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.Submit(userID, requestBody.Content)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

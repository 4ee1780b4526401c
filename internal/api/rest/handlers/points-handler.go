package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/helper/utils"
	"github.com/bmxadventure/user_service/internal/services"
)

type PointsHandler struct {
	points   services.PointsService
	referral services.ReferralService
	log      *zap.SugaredLogger
}

func NewPointsHandler(points services.PointsService, referral services.ReferralService, log *zap.SugaredLogger) *PointsHandler {
	return &PointsHandler{points: points, referral: referral, log: log}
}

func (h *PointsHandler) SetupRoutes(user fiber.Router) {
	user.Get("/points/claim", h.DailyClaim)
	user.Post("/investment", h.RecordInvestment)
	user.Put("/points/convert", h.ConvertPoints)
	user.Put("/points/convert-referred", h.ConvertReferredPoints)
	user.Get("/referrals", h.ListReferredUsers)
}

func (h *PointsHandler) DailyClaim(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	resp, err := h.points.DailyClaim(userID)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *PointsHandler) RecordInvestment(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.InvestmentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid amount")
	}

	user, err := h.points.RecordInvestment(userID, requestBody.Amount)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *PointsHandler) ConvertPoints(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	resp, err := h.points.ConvertPoints(userID)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *PointsHandler) ConvertReferredPoints(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	resp, err := h.points.ConvertReferredPoints(userID)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *PointsHandler) ListReferredUsers(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "referral code is required")
	}

	referred, err := h.referral.ListReferredUsers(code)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, referred)
}

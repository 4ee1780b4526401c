package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/helper/utils"
)

// respondError maps service errors onto HTTP statuses so handlers stay
// thin. Unknown errors are logged and returned as an opaque 500.
func respondError(ctx *fiber.Ctx, log *zap.SugaredLogger, err error) error {
	var locked *domain.AccountLockedError
	if errors.As(err, &locked) {
		return ctx.Status(fiber.StatusLocked).JSON(fiber.Map{
			"error":               locked.Error(),
			"retry_after_seconds": int(locked.RetryAfter.Seconds()),
		})
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoReferredUsers):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrEmailTaken):
		return utils.ResponseError(ctx, fiber.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrOTPMismatch),
		errors.Is(err, domain.ErrWrongOldPassword),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, domain.ErrNotVerified):
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())

	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrNoActiveOTP),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrOTPNotVerified),
		errors.Is(err, domain.ErrBadReferralFormat),
		errors.Is(err, domain.ErrBadReferralCode),
		errors.Is(err, domain.ErrNoReferredPoints),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrClaimLimitReached),
		errors.Is(err, domain.ErrInvalidPoints),
		errors.Is(err, domain.ErrBelowMinInvestment),
		errors.Is(err, domain.ErrEmptyFeedback):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	log.Errorw("unhandled error", "path", ctx.Path(), "error", err)
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
}

func currentUserID(ctx *fiber.Ctx) (uint, bool) {
	userID, ok := ctx.Locals("userID").(uint)
	return userID, ok && userID != 0
}

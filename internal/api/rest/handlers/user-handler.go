package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/helper/utils"
	"github.com/bmxadventure/user_service/internal/services"
)

const sessionCookieTTL = 7 * 24 * time.Hour

type UserHandler struct {
	svc services.UserService
	log *zap.SugaredLogger
}

func NewUserHandler(svc services.UserService, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) SetupPublicRoutes(user fiber.Router) {
	user.Post("/register", h.Register)
	user.Post("/verify", h.VerifyAccount)
	user.Post("/login", h.Login)
	user.Post("/logout", h.Logout)
	user.Post("/forgot-password", h.ForgotPassword)
	user.Post("/verify-otp", h.VerifyResetOTP)
	user.Put("/reset-password", h.ResetPassword)
}

func (h *UserHandler) SetupProtectedRoutes(user fiber.Router) {
	user.Get("/me", h.Me)
	user.Get("/users", h.ListUsers)
	user.Put("/password", h.ChangePassword)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.SignupRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Signup(requestBody)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message": "Verification code sent to your email",
		"user":    user,
	})
}

func (h *UserHandler) VerifyAccount(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyAccountRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.OTP == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and otp are required")
	}

	token, user, err := h.svc.VerifyAccount(requestBody.Email, requestBody.OTP)
	if err != nil {
		return respondError(ctx, h.log, err)
	}

	h.setSessionCookie(ctx, token)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{Token: token, User: user})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	token, user, err := h.svc.Login(requestBody)
	if err != nil {
		return respondError(ctx, h.log, err)
	}

	h.setSessionCookie(ctx, token)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{Token: token, User: user})
}

func (h *UserHandler) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Logged out")
}

func (h *UserHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid email id")
	}

	if err := h.svc.ForgotPassword(requestBody.Email); err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset code sent")
}

func (h *UserHandler) VerifyResetOTP(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyOTPRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.OTP == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and otp are required")
	}

	if err := h.svc.VerifyResetOTP(requestBody.Email, requestBody.OTP); err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "OTP verified")
}

func (h *UserHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	if err := h.svc.ResetPassword(requestBody.Email, requestBody.Password); err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset successfully")
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetProfile(userID)
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := h.svc.ListUsers()
	if err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

func (h *UserHandler) ChangePassword(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.ChangePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ChangePassword(userID, requestBody); err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password changed successfully")
}

func (h *UserHandler) setSessionCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(sessionCookieTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

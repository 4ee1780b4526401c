package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/helper/utils"
	"github.com/bmxadventure/user_service/internal/interfaces"
	"github.com/bmxadventure/user_service/internal/services"
	pkgutils "github.com/bmxadventure/user_service/pkg/utils"
)

const maxProofSize = 5 * 1024 * 1024 // 5MB

var allowedProofExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type UploadHandler struct {
	uploader interfaces.Uploader
	users    services.UserService
	log      *zap.SugaredLogger
}

func NewUploadHandler(uploader interfaces.Uploader, users services.UserService, log *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{uploader: uploader, users: users, log: log}
}

func (h *UploadHandler) SetupRoutes(user fiber.Router) {
	user.Post("/payment-proof", h.UploadPaymentProof)
}

// POST /api/user/payment-proof
// form-data: payment_proof=<image>
func (h *UploadHandler) UploadPaymentProof(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	file, err := ctx.FormFile("payment_proof")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "payment_proof file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedProofExts[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxProofSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, maxProofSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	uploadCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	filename := fmt.Sprintf("%d-%s%s", userID, uuid.NewString(), ext)
	url, err := h.uploader.UploadBytes(uploadCtx, "payment_proofs", filename, b)
	if err != nil {
		h.log.Errorw("payment proof upload failed", "user_id", userID, "error", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "upload failed")
	}

	if err := h.users.SetPaymentProof(userID, url); err != nil {
		return respondError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"url": url})
}

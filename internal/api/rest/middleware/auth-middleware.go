package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/helper"
	"github.com/bmxadventure/user_service/internal/helper/utils"
	"github.com/bmxadventure/user_service/internal/repository"
)

// AuthMiddleware authenticates the request from the session cookie or the
// Authorization header, loads the account, and stashes it in Locals.
// Tokens issued before the account's last password change are rejected.
func AuthMiddleware(auth helper.Auth, repo repository.UserRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// cookie first, header as fallback
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
		}

		user, err := repo.FindUserByID(claims.UserID)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, domain.ErrInvalidToken.Error())
		}

		if user.PasswordChangedAt != nil && user.PasswordChangedAt.Unix() > claims.Iat {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, domain.ErrInvalidToken.Error())
		}

		if user.Status != domain.StatusVerified {
			return utils.ResponseError(ctx, fiber.StatusForbidden, domain.ErrNotVerified.Error())
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

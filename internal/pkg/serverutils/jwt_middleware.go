package serverutils

import (
	"strings"

	"chatrelay-be/internal/pkg/apperror"
	"chatrelay-be/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// JwtMiddleware accepts "Authorization: Bearer <token>" and stores the
// caller's id and username in ctx.Locals.
func JwtMiddleware(verifier token.Verifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !found || tokenStr == "" {
			return apperror.Unauthorized("no token provided")
		}

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			return apperror.Unauthorized("invalid token")
		}

		userId, err := uuid.Parse(claims.UserID)
		if err != nil {
			return apperror.Unauthorized("invalid token")
		}

		ctx.Locals(LocalUserID, userId)
		ctx.Locals(LocalUsername, claims.Username)
		return ctx.Next()
	}
}

// UserID returns the id stored by JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("no token provided")
	}
	return userId, nil
}

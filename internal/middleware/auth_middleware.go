package middleware

import (
	"context"
	"strings"

	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	EmailKey            = "email"
)

// TokenValidator validates session tokens.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    string(domain.CodeUnauthorized),
		Message: "Authentication required",
		Status:  fiber.StatusUnauthorized,
	})
}

// sessionTokens returns the session cookie and the Bearer token, in that order, skipping absent ones.
func sessionTokens(c *fiber.Ctx, cookieName string) []string {
	tokens := make([]string, 0, 2)
	if token := c.Cookies(cookieName); token != "" {
		tokens = append(tokens, token)
	}
	authHeader := c.Get(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerSchema) {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema)); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Protected requires a valid session token and stores the caller's id and email in locals.
// The cookie is tried first; a stale cookie does not shadow a valid Bearer token.
// Missing, malformed, forged and expired tokens all get the same 401.
func Protected(validator TokenValidator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, token := range sessionTokens(c, cookieName) {
			claims, err := validator.ValidateJWT(c.UserContext(), token)
			if err != nil {
				logger.Get().Debug("Rejected session token", zap.String("path", c.Path()), zap.Error(err))
				continue
			}

			c.Locals(UserIDKey, claims.UserID)
			c.Locals(EmailKey, claims.Email)
			return c.Next()
		}
		return unauthorized(c)
	}
}

// UserID returns the authenticated caller set by Protected.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

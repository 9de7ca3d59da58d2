package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
	"quiz-league/internal/service"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"  // int64 caller id in fiber.Ctx locals
	IsAdminKey          = "isAdmin" // bool admin flag in fiber.Ctx locals
)

// Protected requires a valid bearer token and stores the caller's identity in
// the request locals.
func Protected(tokens service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := tokens.Validate(c.UserContext(), tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(IsAdminKey, claims.IsAdmin)
		return c.Next()
	}
}

// AdminOnly must run after Protected. Callers without the admin flag get 401.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, _ := c.Locals(IsAdminKey).(bool); !isAdmin {
			logger.Get().Info("Admin route denied",
				zap.String("path", c.Path()),
				zap.Any("user_id", c.Locals(UserIDKey)))
			return domain.NewUnauthorizedError("admin access required")
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id.
func CurrentUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals(UserIDKey).(int64)
	if !ok || userID == 0 {
		logger.Get().Warn("User ID not found in context", zap.String("path", c.Path()))
		return 0, domain.NewUnauthorizedError("user ID not found in context")
	}
	return userID, nil
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}

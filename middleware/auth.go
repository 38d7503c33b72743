package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/handlers"
	"github.com/recipebox/recipebox/services"
	"github.com/recipebox/recipebox/utils"
)

// AuthRequired middleware ensures the request carries a valid API token
func AuthRequired(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := tokenKey(c)
		if !ok {
			slog.Debug("Auth required: no token in request",
				slog.String("path", c.Path()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		user, err := webApp.Tokens.Authenticate(c.Context(), key)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken):
				return utils.SendUnauthorized(c, "Invalid token")
			case errors.Is(err, services.ErrTokenExpired):
				return utils.SendUnauthorized(c, "Token expired")
			default:
				slog.Error("Auth required: token lookup failed",
					slog.String("error", err.Error()))
				return utils.SendInternalServerError(c, "Authentication failed")
			}
		}

		// Store user and the raw key (for logout) in context
		c.Locals("user", user)
		c.Locals("token_key", key)

		slog.Debug("Auth middleware: user authenticated",
			slog.Int64("user_id", user.ID),
			slog.String("email", user.Email))

		return c.Next()
	}
}

// tokenKey extracts the raw token key from the Authorization header.
// Both "Token <key>" and "Bearer <key>" schemes are accepted.
func tokenKey(c *fiber.Ctx) (string, bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", false
	}

	scheme, key, found := strings.Cut(header, " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	key = strings.TrimSpace(key)
	return key, key != ""
}

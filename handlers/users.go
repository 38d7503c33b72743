package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/recipebox/recipebox/models"
	"github.com/recipebox/recipebox/services"
	"github.com/recipebox/recipebox/utils"
)

func UsersRegister(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		var req webmodels.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		if errs := utils.ValidateRegisterRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		user, err := webApp.Users.Register(ctx, &req)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				return utils.SendConflict(c, "Email is already registered", map[string]string{
					"email": req.Email,
				})
			}
			slog.Error("Failed to register user",
				slog.String("email", req.Email),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to register user")
		}

		return utils.SendCreated(c, user, "User registered successfully")
	}
}

func UsersToken(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		var req webmodels.TokenRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		user, err := webApp.Users.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				slog.Warn("Token request with bad credentials",
					slog.String("email", req.Email),
					slog.String("ip", utils.GetIPAddress(c)))
				return utils.SendBadRequest(c, "Unable to authenticate with provided credentials", nil)
			}
			slog.Error("Failed to authenticate user",
				slog.String("email", req.Email),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to authenticate")
		}

		key, token, err := webApp.Tokens.Issue(ctx, user.ID)
		if err != nil {
			slog.Error("Failed to issue token",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to issue token")
		}

		resp := webmodels.TokenResponse{Token: key}
		if !token.ExpiresAt.IsZero() {
			resp.ExpiresAt = &token.ExpiresAt
		}
		return utils.SendSuccess(c, resp, "Token issued successfully")
	}
}

func UsersLogout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := c.Locals("token_key").(string)
		if !ok || key == "" {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if err := webApp.Tokens.Revoke(c.Context(), key); err != nil {
			slog.Error("Failed to revoke token", slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to log out")
		}

		return utils.SendSuccess(c, nil, "Logged out successfully")
	}
}

func UsersMeDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}
		return utils.SendSuccess(c, user, "Profile retrieved successfully")
	}
}

func UsersMeUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.MeUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		if errs := utils.ValidateMeUpdateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		updated, err := webApp.Users.UpdateProfile(ctx, user, &req)
		if err != nil {
			slog.Error("Failed to update profile",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update profile")
		}

		// A password change revokes every token of the user; the client
		// logs in again with the new password
		if req.Password != nil {
			if err := webApp.Tokens.RevokeAll(ctx, user.ID); err != nil {
				slog.Warn("Failed to revoke tokens after password change",
					slog.Int64("user_id", user.ID),
					slog.String("error", err.Error()))
			}
		} else if key, ok := c.Locals("token_key").(string); ok {
			// Drop the cached auth lookup so the next request sees the
			// updated profile
			webApp.Tokens.Invalidate(key)
		}

		return utils.SendSuccess(c, updated, "Profile updated successfully")
	}
}

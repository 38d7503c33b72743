package handlers

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/recipebox/recipebox/models"
	"github.com/recipebox/recipebox/utils"
)

func TagsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		assignedOnly := c.QueryBool("assigned_only", false)

		tags, err := webApp.Repos.Tag.GetAllByUserID(ctx, user.ID, assignedOnly)
		if err != nil {
			slog.Error("Failed to list tags",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list tags")
		}

		return utils.SendSuccess(c, tags, "Tags retrieved successfully")
	}
}

func TagsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.RenameRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		if errs := utils.ValidateRenameRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		tag, err := webApp.Repos.Tag.GetOrCreate(ctx, user.ID, req.Name)
		if err != nil {
			slog.Error("Failed to create tag",
				slog.Int64("user_id", user.ID),
				slog.String("name", req.Name),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create tag")
		}

		return utils.SendCreated(c, tag, "Tag created successfully")
	}
}

func TagsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		tagID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid tag ID", map[string]string{
				"tag_id": c.Params("id"),
			})
		}

		var req webmodels.RenameRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		if errs := utils.ValidateRenameRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		tag, err := webApp.Repos.Tag.GetByID(ctx, user.ID, tagID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c, "Tag not found")
			}
			return utils.SendInternalServerError(c, "Failed to update tag")
		}

		tag.Name = req.Name
		if err := webApp.Repos.Tag.Update(ctx, tag); err != nil {
			slog.Error("Failed to update tag",
				slog.Int64("tag_id", tagID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update tag")
		}

		return utils.SendSuccess(c, tag, "Tag updated successfully")
	}
}

func TagsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		tagID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid tag ID", map[string]string{
				"tag_id": c.Params("id"),
			})
		}

		deleted, err := webApp.Repos.Tag.Delete(ctx, user.ID, tagID)
		if err != nil {
			slog.Error("Failed to delete tag",
				slog.Int64("tag_id", tagID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete tag")
		}
		if !deleted {
			return utils.SendNotFound(c, "Tag not found")
		}

		return utils.SendNoContent(c)
	}
}

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/repositories"
	webmodels "github.com/recipebox/recipebox/models"
	"github.com/recipebox/recipebox/services"
	"github.com/recipebox/recipebox/utils"
)

func RecipesList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		page, limit := pageParams(c)
		filters := repositories.RecipeFilters{
			TagIDs:        parseIDList(c.Query("tags")),
			IngredientIDs: parseIDList(c.Query("ingredients")),
			Search:        c.Query("search"),
		}

		recipes, total, err := webApp.Recipes.List(ctx, user.ID, filters, page, limit)
		if err != nil {
			slog.Error("Failed to list recipes",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list recipes")
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(total))
		return utils.SendPaginated(c, recipes, pagination, "Recipes retrieved successfully")
	}
}

func RecipesCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.RecipeCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		if errs := utils.ValidateRecipeCreateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		recipe, err := webApp.Recipes.Create(ctx, user.ID, &req)
		if err != nil {
			slog.Error("Failed to create recipe",
				slog.Int64("user_id", user.ID),
				slog.String("title", req.Title),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create recipe")
		}

		return utils.SendCreated(c, recipe, "Recipe created successfully")
	}
}

func RecipesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		recipeID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid recipe ID", map[string]string{
				"recipe_id": c.Params("id"),
			})
		}

		recipe, err := webApp.Recipes.Get(ctx, user.ID, recipeID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found")
			}
			slog.Error("Failed to get recipe",
				slog.Int64("recipe_id", recipeID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to get recipe")
		}

		return utils.SendSuccess(c, recipe, "Recipe retrieved successfully")
	}
}

func RecipesUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		recipeID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid recipe ID", map[string]string{
				"recipe_id": c.Params("id"),
			})
		}

		var req webmodels.RecipeUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{
				"error": err.Error(),
			})
		}

		if errs := utils.ValidateRecipeUpdateRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		recipe, err := webApp.Recipes.Update(ctx, user.ID, recipeID, &req)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found")
			}
			slog.Error("Failed to update recipe",
				slog.Int64("recipe_id", recipeID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update recipe")
		}

		return utils.SendSuccess(c, recipe, "Recipe updated successfully")
	}
}

func RecipesDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		recipeID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid recipe ID", map[string]string{
				"recipe_id": c.Params("id"),
			})
		}

		// Fetch first so the stored image can be cleaned up after delete
		recipe, err := webApp.Recipes.Get(ctx, user.ID, recipeID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found")
			}
			return utils.SendInternalServerError(c, "Failed to delete recipe")
		}

		if err := webApp.Recipes.Delete(ctx, user.ID, recipeID); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found")
			}
			slog.Error("Failed to delete recipe",
				slog.Int64("recipe_id", recipeID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete recipe")
		}

		if recipe.ImageKey != "" && webApp.Spaces != nil {
			if err := webApp.Spaces.DeleteRecipeImage(ctx, recipe.ImageKey); err != nil {
				slog.Warn("Failed to delete recipe image",
					slog.Int64("recipe_id", recipeID),
					slog.String("key", recipe.ImageKey),
					slog.String("error", err.Error()))
			}
		}

		return utils.SendNoContent(c)
	}
}

func RecipesUploadImage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Object storage round-trips get a longer deadline than queries
		ctx, cancel := context.WithTimeout(c.Context(), config.UploadTimeout)
		defer cancel()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		recipeID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid recipe ID", map[string]string{
				"recipe_id": c.Params("id"),
			})
		}

		recipe, err := webApp.Recipes.Get(ctx, user.ID, recipeID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found")
			}
			return utils.SendInternalServerError(c, "Failed to upload image")
		}

		file, err := c.FormFile("image")
		if err != nil {
			return utils.SendBadRequest(c, "Image file is required", nil)
		}

		if errs := utils.ValidateImageUpload(file); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		src, err := file.Open()
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to read image")
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to read image")
		}

		key, url, err := webApp.Spaces.UploadRecipeImage(ctx, user.ID, file.Filename, data)
		if err != nil {
			slog.Error("Failed to upload recipe image",
				slog.Int64("recipe_id", recipeID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to upload image")
		}

		previousKey := recipe.ImageKey
		updated, err := webApp.Recipes.SetImage(ctx, user.ID, recipeID, key, url)
		if err != nil {
			slog.Error("Failed to store image reference",
				slog.Int64("recipe_id", recipeID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to upload image")
		}

		// Replace, don't accumulate
		if previousKey != "" && previousKey != key {
			if err := webApp.Spaces.DeleteRecipeImage(ctx, previousKey); err != nil {
				slog.Warn("Failed to delete replaced image",
					slog.String("key", previousKey),
					slog.String("error", err.Error()))
			}
		}

		slog.Info("Recipe image uploaded",
			slog.Int64("recipe_id", recipeID),
			slog.Int64("user_id", user.ID),
			slog.Int64("size", file.Size))

		return utils.SendSuccess(c, updated, "Image uploaded successfully")
	}
}

// parseIDList parses a comma-separated id list query parameter,
// skipping anything non-numeric.
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseInt64(part)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/recipebox/recipebox/models"
	"github.com/recipebox/recipebox/utils"
)

func IngredientsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		assignedOnly := c.QueryBool("assigned_only", false)

		ingredients, err := webApp.Repos.Ingredient.GetAllByUserID(ctx, user.ID, assignedOnly)
		if err != nil {
			slog.Error("Failed to list ingredients",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to list ingredients")
		}

		return utils.SendSuccess(c, ingredients, "Ingredients retrieved successfully")
	}
}

func IngredientsCreate(webApp *WebApp) fiber.Handler {
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

		ingredient, err := webApp.Repos.Ingredient.GetOrCreate(ctx, user.ID, req.Name)
		if err != nil {
			slog.Error("Failed to create ingredient",
				slog.Int64("user_id", user.ID),
				slog.String("name", req.Name),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to create ingredient")
		}

		return utils.SendCreated(c, ingredient, "Ingredient created successfully")
	}
}

func IngredientsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		ingredientID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid ingredient ID", map[string]string{
				"ingredient_id": c.Params("id"),
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

		ingredient, err := webApp.Repos.Ingredient.GetByID(ctx, user.ID, ingredientID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c, "Ingredient not found")
			}
			return utils.SendInternalServerError(c, "Failed to update ingredient")
		}

		ingredient.Name = req.Name
		if err := webApp.Repos.Ingredient.Update(ctx, ingredient); err != nil {
			slog.Error("Failed to update ingredient",
				slog.Int64("ingredient_id", ingredientID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to update ingredient")
		}

		return utils.SendSuccess(c, ingredient, "Ingredient updated successfully")
	}
}

func IngredientsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		ingredientID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid ingredient ID", map[string]string{
				"ingredient_id": c.Params("id"),
			})
		}

		deleted, err := webApp.Repos.Ingredient.Delete(ctx, user.ID, ingredientID)
		if err != nil {
			slog.Error("Failed to delete ingredient",
				slog.Int64("ingredient_id", ingredientID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to delete ingredient")
		}
		if !deleted {
			return utils.SendNotFound(c, "Ingredient not found")
		}

		return utils.SendNoContent(c)
	}
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"github.com/recipebox/recipebox/database/models"
	"github.com/recipebox/recipebox/database/repositories"
	webmodels "github.com/recipebox/recipebox/models"
)

// RecipeService owns the nested create/update logic: recipe scalars go
// straight to the recipes table, while the tag and ingredient
// collections are reconciled against the user's deduplicated sets via
// get-or-create and link rows.
type RecipeService struct {
	recipes     repositories.RecipeRepository
	tags        repositories.TagRepository
	ingredients repositories.IngredientRepository
}

func NewRecipeService(
	recipes repositories.RecipeRepository,
	tags repositories.TagRepository,
	ingredients repositories.IngredientRepository,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
	}
}

func (s *RecipeService) Create(ctx context.Context, userID int64, req *webmodels.RecipeCreateRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	if err := s.attachTags(ctx, userID, recipe.ID, req.Tags); err != nil {
		return nil, err
	}
	if err := s.attachIngredients(ctx, userID, recipe.ID, req.Ingredients); err != nil {
		return nil, err
	}

	slog.Info("Recipe created",
		slog.Int64("recipe_id", recipe.ID),
		slog.Int64("user_id", userID),
		slog.String("title", recipe.Title))

	return s.Get(ctx, userID, recipe.ID)
}

func (s *RecipeService) Get(ctx context.Context, userID, id int64) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// List returns the user's recipes, newest first. When a search term is
// present the full result set is fuzzy-ranked on title before
// pagination; otherwise pagination happens in the query.
func (s *RecipeService) List(ctx context.Context, userID int64, filters repositories.RecipeFilters, page, limit int) ([]*models.Recipe, int, error) {
	if filters.Search != "" {
		recipes, _, err := s.recipes.GetAllByUserID(ctx, userID, filters, 0, 0)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
		}
		ranked := rankByTitle(recipes, filters.Search)
		total := len(ranked)
		return paginate(ranked, page, limit), total, nil
	}

	offset := (page - 1) * limit
	recipes, total, err := s.recipes.GetAllByUserID(ctx, userID, filters, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, total, nil
}

// Update applies scalar fields and reconciles nested collections. A nil
// collection in the request leaves the links untouched; a non-nil one
// (empty included) clears the links and reattaches from the payload.
func (s *RecipeService) Update(ctx context.Context, userID, id int64, req *webmodels.RecipeUpdateRequest) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if req.Tags != nil {
		if err := s.recipes.ClearTags(ctx, recipe.ID); err != nil {
			return nil, fmt.Errorf("failed to clear tags: %w", err)
		}
		if err := s.attachTags(ctx, userID, recipe.ID, *req.Tags); err != nil {
			return nil, err
		}
	}

	if req.Ingredients != nil {
		if err := s.recipes.ClearIngredients(ctx, recipe.ID); err != nil {
			return nil, fmt.Errorf("failed to clear ingredients: %w", err)
		}
		if err := s.attachIngredients(ctx, userID, recipe.ID, *req.Ingredients); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, userID, recipe.ID)
}

func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.recipes.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	slog.Info("Recipe deleted",
		slog.Int64("recipe_id", id),
		slog.Int64("user_id", userID))
	return nil
}

// SetImage persists the uploaded image location on the recipe.
func (s *RecipeService) SetImage(ctx context.Context, userID, id int64, key, url string) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	recipe.ImageKey = key
	recipe.ImageURL = url
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to store image reference: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) attachTags(ctx context.Context, userID, recipeID int64, items []webmodels.NamedItem) error {
	for _, item := range items {
		tag, err := s.tags.GetOrCreate(ctx, userID, item.Name)
		if err != nil {
			return fmt.Errorf("failed to get or create tag %q: %w", item.Name, err)
		}
		if err := s.recipes.AddTag(ctx, recipeID, tag.ID); err != nil {
			return fmt.Errorf("failed to attach tag %q: %w", item.Name, err)
		}
	}
	return nil
}

func (s *RecipeService) attachIngredients(ctx context.Context, userID, recipeID int64, items []webmodels.NamedItem) error {
	for _, item := range items {
		ingredient, err := s.ingredients.GetOrCreate(ctx, userID, item.Name)
		if err != nil {
			return fmt.Errorf("failed to get or create ingredient %q: %w", item.Name, err)
		}
		if err := s.recipes.AddIngredient(ctx, recipeID, ingredient.ID); err != nil {
			return fmt.Errorf("failed to attach ingredient %q: %w", item.Name, err)
		}
	}
	return nil
}

type recipeTitles []*models.Recipe

func (r recipeTitles) Len() int            { return len(r) }
func (r recipeTitles) String(i int) string { return r[i].Title }

func rankByTitle(recipes []*models.Recipe, search string) []*models.Recipe {
	matches := fuzzy.FindFrom(search, recipeTitles(recipes))
	ranked := make([]*models.Recipe, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, recipes[m.Index])
	}
	return ranked
}

func paginate(recipes []*models.Recipe, page, limit int) []*models.Recipe {
	if limit <= 0 {
		return recipes
	}
	start := (page - 1) * limit
	if start >= len(recipes) {
		return []*models.Recipe{}
	}
	end := start + limit
	if end > len(recipes) {
		end = len(recipes)
	}
	return recipes[start:end]
}

package repositories

import (
	"context"
	"time"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/models"
	"github.com/uptrace/bun"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, userID, id int64) (*models.Recipe, error)
	GetAllByUserID(ctx context.Context, userID int64, filters RecipeFilters, offset, limit int) ([]*models.Recipe, int, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, userID, id int64) (bool, error)

	AddTag(ctx context.Context, recipeID, tagID int64) error
	ClearTags(ctx context.Context, recipeID int64) error
	AddIngredient(ctx context.Context, recipeID, ingredientID int64) error
	ClearIngredients(ctx context.Context, recipeID int64) error
}

type recipeRepository struct {
	db *bun.DB
}

func NewRecipeRepository(db *bun.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(recipe).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *recipeRepository) GetByID(ctx context.Context, userID, id int64) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	recipe := new(models.Recipe)
	err := r.db.NewSelect().
		Model(recipe).
		Relation("Tags", sortByNameDesc).
		Relation("Ingredients", sortByNameDesc).
		Where("r.id = ?", id).
		Where("r.user_id = ?", userID).
		Scan(ctx)
	return recipe, err
}

func (r *recipeRepository) GetAllByUserID(ctx context.Context, userID int64, filters RecipeFilters, offset, limit int) ([]*models.Recipe, int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var recipes []*models.Recipe
	query := r.db.NewSelect().
		Model(&recipes).
		Relation("Tags", sortByNameDesc).
		Relation("Ingredients", sortByNameDesc).
		Where("r.user_id = ?", userID)

	if len(filters.TagIDs) > 0 {
		query = query.Where("r.id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN (?))",
			bun.In(filters.TagIDs))
	}
	if len(filters.IngredientIDs) > 0 {
		query = query.Where("r.id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN (?))",
			bun.In(filters.IngredientIDs))
	}

	query = query.Order("id DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	recipe.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(recipe).
		Column("title", "time_minutes", "price", "link", "description", "image_key", "image_url", "updated_at").
		WherePK().
		Where("user_id = ?", recipe.UserID).
		Exec(ctx)
	return err
}

func (r *recipeRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Recipe)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (r *recipeRepository) AddTag(ctx context.Context, recipeID, tagID int64) error {
	link := &models.RecipeTag{RecipeID: recipeID, TagID: tagID}
	_, err := r.db.NewInsert().
		Model(link).
		On("CONFLICT (recipe_id, tag_id) DO NOTHING").
		Exec(ctx)
	return err
}

func (r *recipeRepository) ClearTags(ctx context.Context, recipeID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.RecipeTag)(nil)).
		Where("recipe_id = ?", recipeID).
		Exec(ctx)
	return err
}

func (r *recipeRepository) AddIngredient(ctx context.Context, recipeID, ingredientID int64) error {
	link := &models.RecipeIngredient{RecipeID: recipeID, IngredientID: ingredientID}
	_, err := r.db.NewInsert().
		Model(link).
		On("CONFLICT (recipe_id, ingredient_id) DO NOTHING").
		Exec(ctx)
	return err
}

func (r *recipeRepository) ClearIngredients(ctx context.Context, recipeID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.RecipeIngredient)(nil)).
		Where("recipe_id = ?", recipeID).
		Exec(ctx)
	return err
}

func sortByNameDesc(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("name DESC")
}

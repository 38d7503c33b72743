package repositories

import (
	"context"
	"time"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/models"
	"github.com/uptrace/bun"
)

type IngredientRepository interface {
	GetAllByUserID(ctx context.Context, userID int64, assignedOnly bool) ([]*models.Ingredient, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Ingredient, error)
	GetOrCreate(ctx context.Context, userID int64, name string) (*models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type ingredientRepository struct {
	db *bun.DB
}

func NewIngredientRepository(db *bun.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetAllByUserID(ctx context.Context, userID int64, assignedOnly bool) ([]*models.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var ingredients []*models.Ingredient
	query := r.db.NewSelect().
		Model(&ingredients).
		Where("ing.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Join("JOIN recipe_ingredients AS ri ON ri.ingredient_id = ing.id").
			Distinct()
	}

	err := query.
		Order("name DESC").
		Scan(ctx)
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, userID, id int64) (*models.Ingredient, error) {
	ingredient := new(models.Ingredient)
	err := r.db.NewSelect().
		Model(ingredient).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	return ingredient, err
}

// GetOrCreate mirrors tagRepository.GetOrCreate for ingredients.
func (r *ingredientRepository) GetOrCreate(ctx context.Context, userID int64, name string) (*models.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	now := time.Now()
	ingredient := &models.Ingredient{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.NewInsert().
		Model(ingredient).
		On("CONFLICT (user_id, name) DO UPDATE").
		Set("updated_at = ingredients.updated_at").
		Returning("*").
		Exec(ctx)
	return ingredient, err
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	ingredient.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(ingredient).
		Column("name", "updated_at").
		WherePK().
		Where("user_id = ?", ingredient.UserID).
		Exec(ctx)
	return err
}

func (r *ingredientRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.Ingredient)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

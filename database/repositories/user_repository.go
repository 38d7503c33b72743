package repositories

import (
	"context"
	"time"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserCount(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(user).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	return user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("LOWER(email) = LOWER(?)", email).
		Scan(ctx)
	return user, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*models.User)(nil)).
		Where("LOWER(email) = LOWER(?)", email).
		Exists(ctx)
}

func (r *userRepository) GetUserCount(ctx context.Context) (int64, error) {
	count, err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Count(ctx)
	return int64(count), err
}

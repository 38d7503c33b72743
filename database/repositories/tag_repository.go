package repositories

import (
	"context"
	"time"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/models"
	"github.com/uptrace/bun"
)

type TagRepository interface {
	GetAllByUserID(ctx context.Context, userID int64, assignedOnly bool) ([]*models.Tag, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Tag, error)
	GetOrCreate(ctx context.Context, userID int64, name string) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type tagRepository struct {
	db *bun.DB
}

func NewTagRepository(db *bun.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetAllByUserID(ctx context.Context, userID int64, assignedOnly bool) ([]*models.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var tags []*models.Tag
	query := r.db.NewSelect().
		Model(&tags).
		Where("t.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Join("JOIN recipe_tags AS rt ON rt.tag_id = t.id").
			Distinct()
	}

	err := query.
		Order("name DESC").
		Scan(ctx)
	return tags, err
}

func (r *tagRepository) GetByID(ctx context.Context, userID, id int64) (*models.Tag, error) {
	tag := new(models.Tag)
	err := r.db.NewSelect().
		Model(tag).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	return tag, err
}

// GetOrCreate returns the user's tag with the given name, creating it
// when absent. The upsert keeps concurrent callers converging on the
// same row instead of failing on the unique index.
func (r *tagRepository) GetOrCreate(ctx context.Context, userID int64, name string) (*models.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	now := time.Now()
	tag := &models.Tag{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.NewInsert().
		Model(tag).
		On("CONFLICT (user_id, name) DO UPDATE").
		Set("updated_at = tags.updated_at").
		Returning("*").
		Exec(ctx)
	return tag, err
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(tag).
		Column("name", "updated_at").
		WherePK().
		Where("user_id = ?", tag.UserID).
		Exec(ctx)
	return err
}

func (r *tagRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.Tag)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/recipebox/recipebox/database/models"
	"github.com/uptrace/bun"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetByDigest(ctx context.Context, digest string) (*models.AuthToken, error)
	DeleteByDigest(ctx context.Context, digest string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db *bun.DB
}

func NewTokenRepository(db *bun.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	token.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(token).
		Returning("id").
		Exec(ctx)
	return err
}

func (r *tokenRepository) GetByDigest(ctx context.Context, digest string) (*models.AuthToken, error) {
	token := new(models.AuthToken)
	err := r.db.NewSelect().
		Model(token).
		Relation("User").
		Where("tok.digest = ?", digest).
		Scan(ctx)
	return token, err
}

func (r *tokenRepository) DeleteByDigest(ctx context.Context, digest string) error {
	_, err := r.db.NewDelete().
		Model((*models.AuthToken)(nil)).
		Where("digest = ?", digest).
		Exec(ctx)
	return err
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.AuthToken)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	return err
}

func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.AuthToken)(nil)).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

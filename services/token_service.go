package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/models"
	"github.com/recipebox/recipebox/database/repositories"
)

const tokenCacheSize = 1024

// TokenService issues and validates opaque API tokens. Raw keys are
// handed to the client exactly once; only SHA-256 digests are stored.
// Validated tokens are kept in an LRU cache to keep the auth check off
// the database on the hot path.
type TokenService struct {
	tokens repositories.TokenRepository
	cache  *lru.Cache
	ttl    time.Duration
}

func NewTokenService(tokens repositories.TokenRepository, ttl time.Duration) *TokenService {
	cache, _ := lru.New(tokenCacheSize)
	return &TokenService{
		tokens: tokens,
		cache:  cache,
		ttl:    ttl,
	}
}

// Issue creates a token for the user and returns the raw key.
func (s *TokenService) Issue(ctx context.Context, userID int64) (string, *models.AuthToken, error) {
	raw := make([]byte, config.TokenKeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("failed to generate token key: %w", err)
	}
	key := hex.EncodeToString(raw)

	token := &models.AuthToken{
		UserID: userID,
		Digest: digest(key),
	}
	if s.ttl > 0 {
		token.ExpiresAt = time.Now().Add(s.ttl)
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return "", nil, fmt.Errorf("failed to store token: %w", err)
	}

	slog.Info("Token issued", slog.Int64("user_id", userID))
	return key, token, nil
}

// Authenticate resolves a raw key to its owning user. The returned
// user is a copy; the cached struct is shared across requests and must
// never be handed out for mutation.
func (s *TokenService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	d := digest(key)

	if cached, ok := s.cache.Get(d); ok {
		token := cached.(*models.AuthToken)
		if expired(token) {
			s.cache.Remove(d)
			return nil, ErrTokenExpired
		}
		return copyUser(token.User), nil
	}

	token, err := s.tokens.GetByDigest(ctx, d)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if expired(token) {
		return nil, ErrTokenExpired
	}

	s.cache.Add(d, token)
	return copyUser(token.User), nil
}

// Invalidate drops the cached lookup for a key so the next request
// reloads the user from the database, e.g. after a profile update.
func (s *TokenService) Invalidate(key string) {
	s.cache.Remove(digest(key))
}

// Revoke deletes the token behind the raw key.
func (s *TokenService) Revoke(ctx context.Context, key string) error {
	d := digest(key)
	s.cache.Remove(d)
	if err := s.tokens.DeleteByDigest(ctx, d); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAll deletes every token of a user, e.g. after a password change.
func (s *TokenService) RevokeAll(ctx context.Context, userID int64) error {
	s.cache.Purge()
	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func expired(token *models.AuthToken) bool {
	return !token.ExpiresAt.IsZero() && time.Now().After(token.ExpiresAt)
}

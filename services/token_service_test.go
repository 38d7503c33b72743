package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/recipebox/database/models"
	"github.com/recipebox/recipebox/database/repositories/mock"
	webmodels "github.com/recipebox/recipebox/models"
)

func Test_TokenService_Issue(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	var stored *models.AuthToken
	tokens.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *models.AuthToken) error {
			stored = tok
			return nil
		})

	s := NewTokenService(tokens, 0)
	key, _, err := s.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(key) != 40 {
		t.Errorf("Issue() key length = %d, want 40", len(key))
	}
	if stored.Digest == key {
		t.Error("Issue() stored the raw key instead of a digest")
	}
	if !stored.ExpiresAt.IsZero() {
		t.Errorf("Issue() with zero TTL set expiry %v", stored.ExpiresAt)
	}
}

func Test_TokenService_Issue_WithTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	tokens.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *models.AuthToken) error {
			if tok.ExpiresAt.IsZero() {
				t.Error("Issue() with TTL left expiry unset")
			}
			return nil
		})

	s := NewTokenService(tokens, time.Hour)
	if _, _, err := s.Issue(context.Background(), 1); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
}

func Test_TokenService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	user := &models.User{ID: 1, Email: "user@example.com"}

	// The repository is hit once; the second lookup comes from the cache.
	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(&models.AuthToken{ID: 1, UserID: 1, User: user}, nil).
		Times(1)

	s := NewTokenService(tokens, 0)
	for i := 0; i < 2; i++ {
		got, err := s.Authenticate(context.Background(), "somekey")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Authenticate() user ID = %d, want %d", got.ID, user.ID)
		}
	}
}

func Test_TokenService_Authenticate_CopiesUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	shared := &models.User{ID: 1, Name: "Before"}
	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(&models.AuthToken{ID: 1, UserID: 1, User: shared}, nil).
		Times(1)

	s := NewTokenService(tokens, 0)
	first, err := s.Authenticate(context.Background(), "somekey")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	second, err := s.Authenticate(context.Background(), "somekey")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if first == shared || first == second {
		t.Error("Authenticate() returned an aliased user pointer")
	}

	// Mutating one caller's user must not leak into another's
	first.Name = "After"
	if second.Name != "Before" {
		t.Errorf("Authenticate() user name = %q, want %q", second.Name, "Before")
	}
}

func Test_TokenService_ConcurrentProfileUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)

	// Both goroutines may race past the cache before it is populated
	shared := &models.User{ID: 1, Name: "Before"}
	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(&models.AuthToken{ID: 1, UserID: 1, User: shared}, nil).
		MinTimes(1).
		MaxTimes(2)
	users.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	tokenSvc := NewTokenService(tokens, 0)
	userSvc := NewUserService(users, bcrypt.MinCost)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			user, err := tokenSvc.Authenticate(context.Background(), "somekey")
			if err != nil {
				t.Errorf("Authenticate() error = %v", err)
				return
			}
			if _, err := userSvc.UpdateProfile(context.Background(), user, &webmodels.MeUpdateRequest{
				Name: &name,
			}); err != nil {
				t.Errorf("UpdateProfile() error = %v", err)
			}
		}("Writer" + string(rune('A'+i)))
	}
	wg.Wait()

	if shared.Name != "Before" {
		t.Errorf("cached user name = %q, want %q", shared.Name, "Before")
	}
}

func Test_TokenService_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(&models.AuthToken{ID: 1, UserID: 1, User: &models.User{ID: 1}}, nil).
		Times(2)

	s := NewTokenService(tokens, 0)
	if _, err := s.Authenticate(context.Background(), "somekey"); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	// Dropping the cache entry forces the next lookup back to the repo
	s.Invalidate("somekey")
	if _, err := s.Authenticate(context.Background(), "somekey"); err != nil {
		t.Fatalf("Authenticate() after Invalidate error = %v", err)
	}
}

func Test_TokenService_Authenticate_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(nil, sql.ErrNoRows)

	s := NewTokenService(tokens, 0)
	_, err := s.Authenticate(context.Background(), "unknown")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidToken", err)
	}
}

func Test_TokenService_Authenticate_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(&models.AuthToken{
			ID:        1,
			UserID:    1,
			User:      &models.User{ID: 1},
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

	s := NewTokenService(tokens, 0)
	_, err := s.Authenticate(context.Background(), "stale")
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Authenticate() error = %v, want ErrTokenExpired", err)
	}
}

func Test_TokenService_Revoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	user := &models.User{ID: 1}
	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(&models.AuthToken{ID: 1, UserID: 1, User: user}, nil).
		Times(2)
	tokens.EXPECT().
		DeleteByDigest(gomock.Any(), gomock.Any()).
		Return(nil)

	s := NewTokenService(tokens, 0)
	if _, err := s.Authenticate(context.Background(), "somekey"); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if err := s.Revoke(context.Background(), "somekey"); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	// Revoked key is gone from the cache, forcing a second repo lookup.
	if _, err := s.Authenticate(context.Background(), "somekey"); err != nil {
		t.Fatalf("Authenticate() after revoke error = %v", err)
	}
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/recipebox/database/models"
	"github.com/recipebox/recipebox/database/repositories/mock"
	webmodels "github.com/recipebox/recipebox/models"
)

func Test_UserService_Register(t *testing.T) {
	tests := []struct {
		name    string
		taken   bool
		wantErr error
	}{
		{name: "new email"},
		{name: "taken email", taken: true, wantErr: ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)

			users.EXPECT().
				ExistsByEmail(gomock.Any(), "user@example.com").
				Return(tt.taken, nil)

			if !tt.taken {
				users.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *models.User) error {
						if u.PasswordHash == "secret123" {
							t.Error("Register() stored the plaintext password")
						}
						u.ID = 1
						return nil
					})
			}

			s := NewUserService(users, bcrypt.MinCost)
			_, err := s.Register(context.Background(), &webmodels.RegisterRequest{
				Email:    "user@example.com",
				Name:     "Test User",
				Password: "secret123",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_UserService_Authenticate(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	known := &models.User{ID: 1, Email: "user@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		repoUser *models.User
		repoErr  error
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "user@example.com",
			password: "secret123",
			repoUser: known,
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "nope",
			repoUser: known,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "secret123",
			repoErr:  sql.ErrNoRows,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)

			users.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.repoUser, tt.repoErr)

			s := NewUserService(users, bcrypt.MinCost)
			_, err := s.Authenticate(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_UserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	users.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil)

	oldHash := "oldhash"
	user := &models.User{ID: 1, Name: "Before", PasswordHash: oldHash}
	newName := "After"
	newPassword := "newsecret"

	s := NewUserService(users, bcrypt.MinCost)
	got, err := s.UpdateProfile(context.Background(), user, &webmodels.MeUpdateRequest{
		Name:     &newName,
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if got.Name != newName {
		t.Errorf("UpdateProfile() name = %q, want %q", got.Name, newName)
	}
	if got.PasswordHash == oldHash {
		t.Error("UpdateProfile() did not rehash the password")
	}
}

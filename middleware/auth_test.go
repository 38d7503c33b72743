package middleware

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/recipebox/recipebox/database/models"
	"github.com/recipebox/recipebox/database/repositories/mock"
	"github.com/recipebox/recipebox/handlers"
	"github.com/recipebox/recipebox/services"
)

func authTestApp(t *testing.T, tokens *mock.MockTokenRepository) *fiber.App {
	webApp := &handlers.WebApp{
		Tokens: services.NewTokenService(tokens, 0),
	}

	app := fiber.New()
	app.Get("/protected", AuthRequired(webApp), func(c *fiber.Ctx) error {
		user, ok := handlers.CurrentUser(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"user_id": user.ID})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "no header",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "token scheme",
			header:     "Token validkey",
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "bearer scheme",
			header:     "Bearer validkey",
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tokens := mock.NewMockTokenRepository(ctrl)

			if tt.wantStatus == fiber.StatusOK {
				tokens.EXPECT().
					GetByDigest(gomock.Any(), gomock.Any()).
					Return(&models.AuthToken{
						ID:     1,
						UserID: 1,
						User:   &models.User{ID: 1, Email: "user@example.com"},
					}, nil)
			}

			app := authTestApp(t, tokens)

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequired_UnknownToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenRepository(ctrl)

	tokens.EXPECT().
		GetByDigest(gomock.Any(), gomock.Any()).
		Return(nil, sql.ErrNoRows)

	app := authTestApp(t, tokens)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token unknownkey")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

package utils

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RegisterRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req:  models.RegisterRequest{Email: "user@example.com", Name: "Test", Password: "secret123"},
		},
		{
			name:       "missing email",
			req:        models.RegisterRequest{Password: "secret123"},
			wantFields: []string{"email"},
		},
		{
			name:       "malformed email",
			req:        models.RegisterRequest{Email: "not-an-email", Password: "secret123"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        models.RegisterRequest{Email: "user@example.com", Password: "pw"},
			wantFields: []string{"password"},
		},
		{
			name:       "oversized name",
			req:        models.RegisterRequest{Email: "user@example.com", Name: strings.Repeat("x", 256), Password: "secret123"},
			wantFields: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegisterRequest(&tt.req)
			assert.Len(t, errs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, errs[i].Field)
			}
		})
	}
}

func TestValidateRecipeCreateRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RecipeCreateRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req: models.RecipeCreateRequest{
				Title:       "Cake",
				TimeMinutes: 30,
				Price:       5.50,
				Tags:        []models.NamedItem{{Name: "Dessert"}},
			},
		},
		{
			name:       "missing title",
			req:        models.RecipeCreateRequest{TimeMinutes: 30},
			wantFields: []string{"title"},
		},
		{
			name:       "negative time and price",
			req:        models.RecipeCreateRequest{Title: "Cake", TimeMinutes: -1, Price: -2},
			wantFields: []string{"time_minutes", "price"},
		},
		{
			name: "blank nested tag name",
			req: models.RecipeCreateRequest{
				Title: "Cake",
				Tags:  []models.NamedItem{{Name: "  "}},
			},
			wantFields: []string{"tags[0].name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRecipeCreateRequest(&tt.req)
			assert.Len(t, errs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, errs[i].Field)
			}
		})
	}
}

func TestValidateRecipeUpdateRequest(t *testing.T) {
	blank := "  "
	negative := -1

	errs := ValidateRecipeUpdateRequest(&models.RecipeUpdateRequest{
		Title:       &blank,
		TimeMinutes: &negative,
	})
	assert.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "time_minutes", errs[1].Field)

	// All-nil request is a valid no-op patch
	assert.Empty(t, ValidateRecipeUpdateRequest(&models.RecipeUpdateRequest{}))
}

func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    multipart.FileHeader
		wantErr bool
	}{
		{
			name: "valid jpeg",
			file: multipart.FileHeader{Filename: "photo.jpg", Size: 1024},
		},
		{
			name:    "oversized file",
			file:    multipart.FileHeader{Filename: "photo.jpg", Size: config.MaxImageSize + 1},
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    multipart.FileHeader{Filename: "recipe.pdf", Size: 1024},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateImageUpload(&tt.file)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

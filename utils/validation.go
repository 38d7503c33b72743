package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/models"
)

var (
	// ValidImageExtensions contains valid image file extensions
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	// ValidEmailRegex is a pragmatic email shape check
	ValidEmailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const (
	MinPasswordLength = 5
	MaxNameLength     = 255
)

// ValidateRegisterRequest validates an account creation request
func ValidateRegisterRequest(req *models.RegisterRequest) []models.ValidationError {
	var errs []models.ValidationError

	if req.Email == "" {
		errs = append(errs, models.ValidationError{
			Field:       "email",
			Description: "Email is required",
		})
	} else if !ValidEmailRegex.MatchString(req.Email) {
		errs = append(errs, models.ValidationError{
			Field:       "email",
			Description: "Email is not a valid address",
		})
	}

	if len(req.Password) < MinPasswordLength {
		errs = append(errs, models.ValidationError{
			Field:       "password",
			Description: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
		})
	}

	if len(req.Name) > MaxNameLength {
		errs = append(errs, models.ValidationError{
			Field:       "name",
			Description: fmt.Sprintf("Name must be less than %d characters", MaxNameLength),
		})
	}

	return errs
}

// ValidateMeUpdateRequest validates a profile update request
func ValidateMeUpdateRequest(req *models.MeUpdateRequest) []models.ValidationError {
	var errs []models.ValidationError

	if req.Password != nil && len(*req.Password) < MinPasswordLength {
		errs = append(errs, models.ValidationError{
			Field:       "password",
			Description: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
		})
	}

	if req.Name != nil && len(*req.Name) > MaxNameLength {
		errs = append(errs, models.ValidationError{
			Field:       "name",
			Description: fmt.Sprintf("Name must be less than %d characters", MaxNameLength),
		})
	}

	return errs
}

// ValidateRecipeCreateRequest validates a recipe creation request
func ValidateRecipeCreateRequest(req *models.RecipeCreateRequest) []models.ValidationError {
	var errs []models.ValidationError

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, models.ValidationError{
			Field:       "title",
			Description: "Title is required",
		})
	} else if len(req.Title) > MaxNameLength {
		errs = append(errs, models.ValidationError{
			Field:       "title",
			Description: fmt.Sprintf("Title must be less than %d characters", MaxNameLength),
		})
	}

	if req.TimeMinutes < 0 {
		errs = append(errs, models.ValidationError{
			Field:       "time_minutes",
			Description: "Time must not be negative",
		})
	}

	if req.Price < 0 {
		errs = append(errs, models.ValidationError{
			Field:       "price",
			Description: "Price must not be negative",
		})
	}

	errs = append(errs, validateNamedItems("tags", req.Tags)...)
	errs = append(errs, validateNamedItems("ingredients", req.Ingredients)...)

	return errs
}

// ValidateRecipeUpdateRequest validates a recipe update request
func ValidateRecipeUpdateRequest(req *models.RecipeUpdateRequest) []models.ValidationError {
	var errs []models.ValidationError

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		errs = append(errs, models.ValidationError{
			Field:       "title",
			Description: "Title must not be empty",
		})
	}

	if req.TimeMinutes != nil && *req.TimeMinutes < 0 {
		errs = append(errs, models.ValidationError{
			Field:       "time_minutes",
			Description: "Time must not be negative",
		})
	}

	if req.Price != nil && *req.Price < 0 {
		errs = append(errs, models.ValidationError{
			Field:       "price",
			Description: "Price must not be negative",
		})
	}

	if req.Tags != nil {
		errs = append(errs, validateNamedItems("tags", *req.Tags)...)
	}
	if req.Ingredients != nil {
		errs = append(errs, validateNamedItems("ingredients", *req.Ingredients)...)
	}

	return errs
}

// ValidateRenameRequest validates a tag/ingredient rename
func ValidateRenameRequest(req *models.RenameRequest) []models.ValidationError {
	var errs []models.ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, models.ValidationError{
			Field:       "name",
			Description: "Name is required",
		})
	} else if len(req.Name) > MaxNameLength {
		errs = append(errs, models.ValidationError{
			Field:       "name",
			Description: fmt.Sprintf("Name must be less than %d characters", MaxNameLength),
		})
	}

	return errs
}

// ValidateImageUpload validates an uploaded recipe image
func ValidateImageUpload(file *multipart.FileHeader) []models.ValidationError {
	var errs []models.ValidationError

	if file.Size > config.MaxImageSize {
		errs = append(errs, models.ValidationError{
			Field:       "image",
			Description: "Image exceeds the 10MB size limit",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, allowed := range ValidImageExtensions {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, models.ValidationError{
			Field:       "image",
			Description: fmt.Sprintf("Unsupported image extension %q", ext),
		})
	}

	return errs
}

func validateNamedItems(field string, items []models.NamedItem) []models.ValidationError {
	var errs []models.ValidationError
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, models.ValidationError{
				Field:       fmt.Sprintf("%s[%d].name", field, i),
				Description: "Name is required",
			})
		} else if len(item.Name) > MaxNameLength {
			errs = append(errs, models.ValidationError{
				Field:       fmt.Sprintf("%s[%d].name", field, i),
				Description: fmt.Sprintf("Name must be less than %d characters", MaxNameLength),
			})
		}
	}
	return errs
}

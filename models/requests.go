package models

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// TokenRequest exchanges credentials for an API token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MeUpdateRequest partially updates the authenticated user's profile.
// Nil fields are left untouched.
type MeUpdateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// NamedItem is a nested tag or ingredient reference inside a recipe
// payload. Items are matched by name against the user's existing set.
type NamedItem struct {
	Name string `json:"name"`
}

// RecipeCreateRequest creates a recipe with optional nested tag and
// ingredient collections.
type RecipeCreateRequest struct {
	Title       string      `json:"title"`
	TimeMinutes int         `json:"time_minutes"`
	Price       float64     `json:"price"`
	Link        string      `json:"link"`
	Description string      `json:"description"`
	Tags        []NamedItem `json:"tags"`
	Ingredients []NamedItem `json:"ingredients"`
}

// RecipeUpdateRequest partially updates a recipe. Nil scalar fields are
// left untouched. A nil collection leaves the links as they are; a
// non-nil collection (including an empty one) replaces them entirely.
type RecipeUpdateRequest struct {
	Title       *string      `json:"title"`
	TimeMinutes *int         `json:"time_minutes"`
	Price       *float64     `json:"price"`
	Link        *string      `json:"link"`
	Description *string      `json:"description"`
	Tags        *[]NamedItem `json:"tags"`
	Ingredients *[]NamedItem `json:"ingredients"`
}

// RenameRequest updates a tag or ingredient name.
type RenameRequest struct {
	Name string `json:"name"`
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

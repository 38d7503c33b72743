package models

import (
	"github.com/recipebox/recipebox/database/repositories"
)

// Repositories bundles every repository the web layer needs.
type Repositories struct {
	User       repositories.UserRepository
	Token      repositories.TokenRepository
	Recipe     repositories.RecipeRepository
	Tag        repositories.TagRepository
	Ingredient repositories.IngredientRepository
}

func NewRepositories(
	user repositories.UserRepository,
	token repositories.TokenRepository,
	recipe repositories.RecipeRepository,
	tag repositories.TagRepository,
	ingredient repositories.IngredientRepository,
) *Repositories {
	return &Repositories{
		User:       user,
		Token:      token,
		Recipe:     recipe,
		Tag:        tag,
		Ingredient: ingredient,
	}
}

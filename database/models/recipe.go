package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Recipe struct {
	bun.BaseModel `bun:"table:recipes,alias:r"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID      int64     `bun:"user_id,notnull" json:"-"`
	Title       string    `bun:"title,notnull" json:"title"`
	TimeMinutes int       `bun:"time_minutes,notnull" json:"time_minutes"`
	Price       float64   `bun:"price,notnull,type:numeric(5,2)" json:"price"`
	Link        string    `bun:"link" json:"link"`
	Description string    `bun:"description" json:"description,omitempty"`
	ImageKey    string    `bun:"image_key" json:"-"`
	ImageURL    string    `bun:"image_url" json:"image,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`

	// Relations
	Tags        []*Tag        `bun:"m2m:recipe_tags,join:Recipe=Tag" json:"tags"`
	Ingredients []*Ingredient `bun:"m2m:recipe_ingredients,join:Recipe=Ingredient" json:"ingredients"`
}

// RecipeTag links a recipe to one of its owner's tags.
type RecipeTag struct {
	bun.BaseModel `bun:"table:recipe_tags,alias:rt"`

	RecipeID int64   `bun:"recipe_id,pk"`
	Recipe   *Recipe `bun:"rel:belongs-to,join:recipe_id=id"`
	TagID    int64   `bun:"tag_id,pk"`
	Tag      *Tag    `bun:"rel:belongs-to,join:tag_id=id"`
}

// RecipeIngredient links a recipe to one of its owner's ingredients.
type RecipeIngredient struct {
	bun.BaseModel `bun:"table:recipe_ingredients,alias:ri"`

	RecipeID     int64       `bun:"recipe_id,pk"`
	Recipe       *Recipe     `bun:"rel:belongs-to,join:recipe_id=id"`
	IngredientID int64       `bun:"ingredient_id,pk"`
	Ingredient   *Ingredient `bun:"rel:belongs-to,join:ingredient_id=id"`
}

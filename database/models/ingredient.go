package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ingredient names are unique per owning user, same rule as tags.
type Ingredient struct {
	bun.BaseModel `bun:"table:ingredients,alias:ing"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"-"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}

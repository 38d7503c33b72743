package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tag names are unique per owning user, enforced by a unique index on
// (user_id, name).
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"-"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	Name         string    `bun:"name,notnull" json:"name"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// AuthToken is an opaque API token. Only the SHA-256 digest of the key
// is stored; the raw key is returned to the client once at issue time.
type AuthToken struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:tok"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	Digest    string    `bun:"digest,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	ExpiresAt time.Time `bun:"expires_at,nullzero"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}

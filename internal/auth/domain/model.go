package domain

import "time"

// User is a registered account. Records are created at registration and
// never mutated or deleted afterwards.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Identity is the per-request caller identity loaded from a session token.
// It carries no authorization scope; project roles are re-derived from
// current project state on every request.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

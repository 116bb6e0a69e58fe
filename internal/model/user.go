package model

import "time"

// User represents an account in the `users` table.  Identity only; all
// event-specific data (name, ticket, booking) hangs off the user's
// Enrollment.  The password hash never leaves the repository layer, so the
// field carries no json tag exposure beyond "-".
type User struct {
	ID           uint64    `json:"id"`             // users.id
	Email        string    `json:"email"`          // users.email (unique, stored lowercase)
	PasswordHash string    `json:"-"`              // users.password_hash (bcrypt)
	CreatedAt    time.Time `json:"created_at"`     // users.created_at
	UpdatedAt    time.Time `json:"updated_at"`     // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is persisted; the raw value is returned to
// the client exactly once.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

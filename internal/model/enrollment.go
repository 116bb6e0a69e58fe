package model

import "time"

// Enrollment is a user's registration record for the event.  Every user owns
// at most one enrollment; it is created together with the account at
// sign-up.  Tickets reference the enrollment, not the user, so deleting or
// re-creating an enrollment would orphan the ticket chain.
type Enrollment struct {
	ID        uint64    `json:"id"`         // enrollments.id
	UserID    uint64    `json:"user_id"`    // enrollments.user_id (unique)
	Name      string    `json:"name"`       // enrollments.name (attendee display name)
	CreatedAt time.Time `json:"created_at"` // enrollments.created_at
	UpdatedAt time.Time `json:"updated_at"` // enrollments.updated_at
}

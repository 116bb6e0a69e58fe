package model

import "time"

// Booking reserves a room for a user.  A user holds at most one active
// booking at a time; this is enforced by the booking handler, not by a
// uniqueness constraint.  Room is populated when the repository joined the
// room row (current-booking lookups do).
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	UserID    uint64    `json:"user_id"`    // bookings.user_id
	RoomID    uint64    `json:"room_id"`    // bookings.room_id
	Room      *Room     `json:"room,omitempty"`
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
	UpdatedAt time.Time `json:"updated_at"` // bookings.updated_at
}

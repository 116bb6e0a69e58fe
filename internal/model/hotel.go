package model

import "time"

// Hotel is a hotel offered to attendees whose ticket includes
// accommodation.  Browsing hotels is gated on ticket eligibility, not on
// the hotel rows themselves, so the struct carries no access flags.
type Hotel struct {
	ID        uint64    `json:"id"`         // hotels.id
	Name      string    `json:"name"`       // hotels.name
	Image     string    `json:"image"`      // hotels.image (URL)
	CreatedAt time.Time `json:"created_at"` // hotels.created_at
	UpdatedAt time.Time `json:"updated_at"` // hotels.updated_at
}

// Room belongs to one hotel.  Capacity is the maximum number of concurrent
// bookings the room accepts; zero means the room is never bookable.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	Name      string    `json:"name"`       // rooms.name
	Capacity  int       `json:"capacity"`   // rooms.capacity (>= 0)
	HotelID   uint64    `json:"hotel_id"`   // rooms.hotel_id
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time `json:"updated_at"` // rooms.updated_at
}

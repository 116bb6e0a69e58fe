package model

import "time"

// TicketStatus enumerates the lifecycle of a ticket.  The only legal
// transition is RESERVED -> PAID, performed exactly once when a payment is
// recorded.  There is no reverse transition.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType is an immutable catalog entry describing what a ticket grants.
// Price is stored in cents.  IsRemote tickets are for online attendance and
// never grant hotel access; IncludesHotel marks in-person tickets that come
// with accommodation.
type TicketType struct {
	ID            uint64    `json:"id"`             // ticket_types.id
	Name          string    `json:"name"`           // ticket_types.name
	Price         int64     `json:"price"`          // ticket_types.price (cents)
	IsRemote      bool      `json:"is_remote"`      // ticket_types.is_remote
	IncludesHotel bool      `json:"includes_hotel"` // ticket_types.includes_hotel
	CreatedAt     time.Time `json:"created_at"`     // ticket_types.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // ticket_types.updated_at
}

// Ticket is a purchasable pass tied to an Enrollment and a TicketType.
// TicketType is populated by repository queries that join the catalog row;
// it is nil when only the base ticket row was loaded.
type Ticket struct {
	ID           uint64       `json:"id"`            // tickets.id
	TicketTypeID uint64       `json:"ticket_type_id"`// tickets.ticket_type_id
	EnrollmentID uint64       `json:"enrollment_id"` // tickets.enrollment_id
	Status       TicketStatus `json:"status"`        // tickets.status
	TicketType   *TicketType  `json:"ticket_type,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`    // tickets.created_at
	UpdatedAt    time.Time    `json:"updated_at"`    // tickets.updated_at
}

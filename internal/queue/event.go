// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for publishing and consuming. Routing key equals queue
// name; everything goes through the default exchange.
const (
	TicketPaidQueue     = "ticket.paid"
	BookingCreatedQueue = "booking.created"
)

// TicketPaidEvent is published when a payment is recorded and the ticket
// flips to PAID. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type TicketPaidEvent struct {
	TicketID    uint64 `json:"ticket_id"`
	UserID      uint64 `json:"user_id"`
	TicketType  string `json:"ticket_type"`
	AmountCents int64  `json:"amount_cents"`
	CardIssuer  string `json:"card_issuer"`
	PaidAt      string `json:"paid_at"`
}

// BookingCreatedEvent is published when a room booking is created or moved
// to a different room.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	CreatedAt string `json:"created_at"`
}

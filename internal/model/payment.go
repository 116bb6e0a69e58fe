package model

import "time"

// Payment records a completed purchase of a ticket.  At most one payment
// exists per ticket.  Only the card issuer and the last four digits of the
// card number are retained; the full number, holder name, expiration and
// cvv are used in-flight and never persisted.
type Payment struct {
	ID             uint64    `json:"id"`               // payments.id
	TicketID       uint64    `json:"ticket_id"`        // payments.ticket_id
	Value          int64     `json:"value"`            // payments.value (cents, copied from ticket type price)
	CardIssuer     string    `json:"card_issuer"`      // payments.card_issuer
	CardLastDigits string    `json:"card_last_digits"` // payments.card_last_digits (exactly 4 chars)
	CreatedAt      time.Time `json:"created_at"`       // payments.created_at
	UpdatedAt      time.Time `json:"updated_at"`       // payments.updated_at
}

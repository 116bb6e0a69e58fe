// Package handler exposes HTTP handlers for the booking API. Handlers own
// the business rules; they talk to storage through the narrow store
// interfaces below so tests can substitute in-memory fakes for the MySQL
// repositories.
package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
	"github.com/iliyamo/event-hotel-reservation/internal/queue"
)

// UserStore is the slice of the user repository used by auth endpoints.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenStore persists refresh tokens for session management.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// EnrollmentStore resolves and creates event enrollments.
type EnrollmentStore interface {
	Create(ctx context.Context, userID uint64, name string) (uint64, error)
	GetByUserID(ctx context.Context, userID uint64) (model.Enrollment, error)
}

// TicketStore covers tickets and the ticket type catalog.
type TicketStore interface {
	GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (model.Ticket, error)
	GetByID(ctx context.Context, id uint64) (model.Ticket, error)
	OwnerUserID(ctx context.Context, ticketID uint64) (uint64, error)
	ListTypes(ctx context.Context) ([]model.TicketType, error)
	Create(ctx context.Context, enrollmentID, ticketTypeID uint64) (model.Ticket, error)
	MarkPaid(ctx context.Context, ticketID uint64) error
}

// HotelStore provides read access to the hotel catalog.
type HotelStore interface {
	ListAll(ctx context.Context) ([]model.Hotel, error)
	GetByID(ctx context.Context, id uint64) (model.Hotel, error)
	ListRooms(ctx context.Context, hotelID uint64) ([]model.Room, error)
}

// BookingStore creates and moves room bookings. Capacity checking happens
// inside the store so the count-then-write sequence stays atomic.
type BookingStore interface {
	GetByUser(ctx context.Context, userID uint64) (model.Booking, error)
	CreateInRoom(ctx context.Context, userID, roomID uint64) (uint64, error)
	MoveToRoom(ctx context.Context, bookingID, roomID uint64) (uint64, error)
}

// PaymentStore persists ticket payments.
type PaymentStore interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	GetByTicket(ctx context.Context, ticketID uint64) (model.Payment, error)
}

// EventPublisher sends domain events to the message broker. A nil publisher
// disables publishing; handler mutations never fail because of the broker.
type EventPublisher interface {
	PublishTicketPaid(ctx context.Context, ev queue.TicketPaidEvent) error
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// getUserID extracts the user_id set by the JWT middleware and converts it
// to uint64. JWT numeric claims arrive as float64 after JSON decoding.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

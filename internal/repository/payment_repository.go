package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

// PaymentRepo persists payments. A ticket has at most one payment in this
// design; GetByTicket therefore returns a single row.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment and returns the stored row with timestamps
// populated.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (ticket_id, value, card_issuer, card_last_digits) VALUES (?,?,?,?)",
		p.TicketID, p.Value, p.CardIssuer, p.CardLastDigits)
	if err != nil {
		return model.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Payment{}, err
	}
	return r.getByID(ctx, uint64(id))
}

// GetByTicket returns the payment recorded for a ticket or
// ErrPaymentNotFound.
func (r *PaymentRepo) GetByTicket(ctx context.Context, ticketID uint64) (model.Payment, error) {
	var p model.Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, ticket_id, value, card_issuer, card_last_digits, created_at, updated_at FROM payments WHERE ticket_id=? LIMIT 1",
		ticketID).Scan(&p.ID, &p.TicketID, &p.Value, &p.CardIssuer, &p.CardLastDigits, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, ErrPaymentNotFound
	}
	return p, err
}

func (r *PaymentRepo) getByID(ctx context.Context, id uint64) (model.Payment, error) {
	var p model.Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, ticket_id, value, card_issuer, card_last_digits, created_at, updated_at FROM payments WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.TicketID, &p.Value, &p.CardIssuer, &p.CardLastDigits, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

// TicketRepo provides access to tickets and the ticket type catalog.
// Queries that feed the eligibility rules join the catalog row so callers
// get the remote/hotel flags in one round trip.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketSelect = `SELECT t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
       tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
FROM tickets t
JOIN ticket_types tt ON tt.id = t.ticket_type_id`

func scanTicketWithType(row *sql.Row) (model.Ticket, error) {
	var (
		t  model.Ticket
		tt model.TicketType
	)
	err := row.Scan(
		&t.ID, &t.TicketTypeID, &t.EnrollmentID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel, &tt.CreatedAt, &tt.UpdatedAt,
	)
	if err != nil {
		return model.Ticket{}, err
	}
	t.TicketType = &tt
	return t, nil
}

// GetByEnrollmentID returns the ticket belonging to an enrollment, with its
// type embedded, or ErrTicketNotFound.
func (r *TicketRepo) GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
	row := r.DB.QueryRowContext(ctx, ticketSelect+" WHERE t.enrollment_id=? LIMIT 1", enrollmentID)
	t, err := scanTicketWithType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// GetByID returns a ticket by primary key with its type embedded, or
// ErrTicketNotFound.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	row := r.DB.QueryRowContext(ctx, ticketSelect+" WHERE t.id=? LIMIT 1", id)
	t, err := scanTicketWithType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// OwnerUserID resolves the user that owns a ticket by following the
// enrollment. Used for payment authorization checks.
func (r *TicketRepo) OwnerUserID(ctx context.Context, ticketID uint64) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT e.user_id FROM tickets t JOIN enrollments e ON e.id = t.enrollment_id WHERE t.id=? LIMIT 1`,
		ticketID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTicketNotFound
	}
	return userID, err
}

// ListTypes returns the full ticket type catalog, unfiltered.
func (r *TicketRepo) ListTypes(ctx context.Context) ([]model.TicketType, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, price, is_remote, includes_hotel, created_at, updated_at FROM ticket_types ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TicketType, 0)
	for rows.Next() {
		var tt model.TicketType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel, &tt.CreatedAt, &tt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, rows.Err()
}

// Create inserts a RESERVED ticket for the enrollment and returns it with
// the ticket type embedded. A dangling ticket type id surfaces as
// ErrTicketTypeNotFound instead of a bare FK violation.
func (r *TicketRepo) Create(ctx context.Context, enrollmentID, ticketTypeID uint64) (model.Ticket, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM ticket_types WHERE id=?)", ticketTypeID).Scan(&exists)
	if err != nil {
		return model.Ticket{}, err
	}
	if !exists {
		return model.Ticket{}, ErrTicketTypeNotFound
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (enrollment_id, ticket_type_id, status) VALUES (?,?,?)",
		enrollmentID, ticketTypeID, model.TicketStatusReserved)
	if err != nil {
		return model.Ticket{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Ticket{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// MarkPaid flips a ticket from RESERVED to PAID. The WHERE clause keeps the
// transition one-way: a ticket that is already PAID is left untouched.
func (r *TicketRepo) MarkPaid(ctx context.Context, ticketID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET status=? WHERE id=? AND status=?",
		model.TicketStatusPaid, ticketID, model.TicketStatusReserved)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the ticket is gone or it was already PAID; distinguish.
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM tickets WHERE id=?)", ticketID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrTicketNotFound
		}
	}
	return nil
}

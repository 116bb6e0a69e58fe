package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

// BookingRepo provides CRUD operations for room bookings. Mutations that
// depend on a room's occupancy run inside a transaction that locks the room
// row, so two concurrent requests cannot both take the last free slot.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// GetByUser returns the user's current booking with its room embedded, or
// ErrBookingNotFound when the user holds none.
func (r *BookingRepo) GetByUser(ctx context.Context, userID uint64) (model.Booking, error) {
	var (
		b  model.Booking
		rm model.Room
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
		        rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at
		 FROM bookings b
		 JOIN rooms rm ON rm.id = b.room_id
		 WHERE b.user_id=? LIMIT 1`,
		userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	b.Room = &rm
	return b, nil
}

// CreateInRoom books the room for the user after checking capacity. The
// room row is locked for the duration of the transaction, so the
// count-then-insert sequence is atomic. Returns the new booking id,
// ErrRoomNotFound, or ErrRoomFull.
func (r *BookingRepo) CreateInRoom(ctx context.Context, userID, roomID uint64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkRoomCapacityTx(ctx, tx, roomID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (user_id, room_id) VALUES (?,?)", userID, roomID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// MoveToRoom repoints an existing booking to a new room, re-running the
// same capacity check as CreateInRoom. The occupancy count covers every
// booking currently in the target room, including the one being moved if
// it already sits there. Returns the booking id, ErrBookingNotFound,
// ErrRoomNotFound, or ErrRoomFull.
func (r *BookingRepo) MoveToRoom(ctx context.Context, bookingID, roomID uint64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM bookings WHERE id=?)", bookingID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrBookingNotFound
	}

	if err := checkRoomCapacityTx(ctx, tx, roomID); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET room_id=? WHERE id=?", roomID, bookingID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return bookingID, nil
}

// checkRoomCapacityTx locks the room row and verifies there is a free slot.
// Capacity zero never admits a booking.
func checkRoomCapacityTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	var capacity int
	err := tx.QueryRowContext(ctx,
		"SELECT capacity FROM rooms WHERE id=? FOR UPDATE", roomID).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return err
	}
	var occupied int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE room_id=?", roomID).Scan(&occupied); err != nil {
		return err
	}
	if occupied >= capacity {
		return ErrRoomFull
	}
	return nil
}

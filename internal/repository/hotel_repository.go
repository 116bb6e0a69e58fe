package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

// HotelRepo provides read access to the hotel catalog and its rooms.
// Hotels and rooms are reference data maintained out of band; this
// repository never mutates them.
type HotelRepo struct{ DB *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{DB: db} }

// ListAll returns every hotel in catalog order.
func (r *HotelRepo) ListAll(ctx context.Context) ([]model.Hotel, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetByID returns a single hotel or ErrHotelNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	var h model.Hotel
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, image, created_at, updated_at FROM hotels WHERE id=? LIMIT 1",
		id).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Hotel{}, ErrHotelNotFound
	}
	return h, err
}

// ListRooms returns all rooms of a hotel. An empty slice is a valid result;
// callers that need the hotel itself validated should GetByID first.
func (r *HotelRepo) ListRooms(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE hotel_id=? ORDER BY id",
		hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

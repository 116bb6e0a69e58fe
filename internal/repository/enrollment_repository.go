package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

// EnrollmentRepo provides access to the enrollments table. An enrollment is
// the event registration that every ticket hangs off; it is created at
// sign-up together with the user row.
type EnrollmentRepo struct{ DB *sql.DB }

func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{DB: db} }

// Create inserts an enrollment for the user and returns its ID.
func (r *EnrollmentRepo) Create(ctx context.Context, userID uint64, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO enrollments (user_id, name) VALUES (?,?)",
		userID, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUserID returns the enrollment owned by the user or
// ErrEnrollmentNotFound when the user never enrolled.
func (r *EnrollmentRepo) GetByUserID(ctx context.Context, userID uint64) (model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at, updated_at FROM enrollments WHERE user_id=? LIMIT 1",
		userID).Scan(&e.ID, &e.UserID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Enrollment{}, ErrEnrollmentNotFound
	}
	return e, err
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/repository"
)

// EnrollmentHandler serves the caller's event enrollment.
type EnrollmentHandler struct {
	Enrollments EnrollmentStore
}

func NewEnrollmentHandler(e EnrollmentStore) *EnrollmentHandler {
	return &EnrollmentHandler{Enrollments: e}
}

// GetEnrollment handles GET /v1/enrollments. Every account gets its
// enrollment at sign-up, so a miss here means the row was removed out of
// band; it still answers 404 rather than 500.
func (h *EnrollmentHandler) GetEnrollment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	enrollment, err := h.Enrollments.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "enrollment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, enrollment)
}

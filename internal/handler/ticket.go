package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/repository"
)

// TicketHandler covers the ticket catalog and the caller's own ticket.
type TicketHandler struct {
	Enrollments EnrollmentStore
	Tickets     TicketStore
}

func NewTicketHandler(e EnrollmentStore, t TicketStore) *TicketHandler {
	return &TicketHandler{Enrollments: e, Tickets: t}
}

type createTicketReq struct {
	TicketTypeID uint64 `json:"ticket_type_id"`
}

// ListTicketTypes handles GET /v1/tickets/types. The catalog is public to
// any authenticated user and small enough to return whole.
func (h *TicketHandler) ListTicketTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	types, err := h.Tickets.ListTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, types)
}

// GetTicket handles GET /v1/tickets: the caller's ticket with its type
// embedded. No enrollment and no ticket both answer 404.
func (h *TicketHandler) GetTicket(c echo.Context) error {
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
	ticket, err := h.Tickets.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, ticket)
}

// CreateTicket handles POST /v1/tickets: reserve a ticket of the requested
// type for the caller's enrollment. The ticket starts RESERVED and turns
// PAID through the payments endpoint.
func (h *TicketHandler) CreateTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTicketReq
	if err := c.Bind(&req); err != nil || req.TicketTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_type_id required"})
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
	ticket, err := h.Tickets.Create(ctx, enrollment.ID, req.TicketTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
	}
	return c.JSON(http.StatusCreated, ticket)
}

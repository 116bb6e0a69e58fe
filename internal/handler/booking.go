package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
	"github.com/iliyamo/event-hotel-reservation/internal/queue"
	"github.com/iliyamo/event-hotel-reservation/internal/repository"
)

// errBookingIneligible marks a user whose ticket does not permit booking a
// room: unpaid, remote, or sold without accommodation. Unlike the hotel
// browse gate this maps to 403, matching the public API contract.
var errBookingIneligible = errors.New("ticket does not permit booking")

// BookingHandler creates, moves and reads room bookings.
type BookingHandler struct {
	Enrollments EnrollmentStore
	Tickets     TicketStore
	Bookings    BookingStore
	Events      EventPublisher // optional; nil disables publishing
}

func NewBookingHandler(e EnrollmentStore, t TicketStore, b BookingStore, ev EventPublisher) *BookingHandler {
	return &BookingHandler{Enrollments: e, Tickets: t, Bookings: b, Events: ev}
}

type bookingReq struct {
	RoomID uint64 `json:"room_id"`
}

// validateAccess checks the enrollment -> ticket -> ticket type chain for
// booking eligibility. Missing links surface the repository not-found
// errors; a ticket that exists but does not qualify surfaces
// errBookingIneligible.
func (h *BookingHandler) validateAccess(ctx context.Context, userID uint64) error {
	enrollment, err := h.Enrollments.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	ticket, err := h.Tickets.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return err
	}
	if ticket.Status == model.TicketStatusReserved || ticket.TicketType.IsRemote || !ticket.TicketType.IncludesHotel {
		return errBookingIneligible
	}
	return nil
}

func bookingAccessError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEnrollmentNotFound), errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, errBookingIneligible):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// GetBooking handles GET /v1/booking: the caller's active booking with the
// room embedded, 404 when none exists.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Bookings.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /v1/booking. Eligibility is checked first;
// the capacity check and insert run atomically inside the booking store.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.validateAccess(ctx, userID); err != nil {
		return bookingAccessError(c, err)
	}
	bookingID, err := h.Bookings.CreateInRoom(ctx, userID, req.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrRoomFull):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "room is full"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
		}
	}

	h.publishCreated(c.Request().Context(), bookingID, userID, req.RoomID)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": bookingID})
}

// UpdateBooking handles PUT /v1/booking/:bookingId, moving the booking to
// another room under the same capacity rules.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.validateAccess(ctx, userID); err != nil {
		return bookingAccessError(c, err)
	}
	movedID, err := h.Bookings.MoveToRoom(ctx, bookingID, req.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrRoomFull):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "room is full"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
		}
	}

	h.publishCreated(c.Request().Context(), movedID, userID, req.RoomID)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": movedID})
}

// publishCreated fires the booking event in the background. The request
// context is detached so an early client disconnect does not cancel the
// publish.
func (h *BookingHandler) publishCreated(ctx context.Context, bookingID, userID, roomID uint64) {
	if h.Events == nil {
		return
	}
	ev := queue.BookingCreatedEvent{
		BookingID: bookingID,
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func(ctx context.Context) {
		_ = h.Events.PublishBookingCreated(ctx, ev)
	}(context.WithoutCancel(ctx))
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
	"github.com/iliyamo/event-hotel-reservation/internal/repository"
)

// errHotelAccessUnpaid marks a user whose ticket chain exists but does not
// grant hotel access: the ticket is unpaid, remote, or sold without
// accommodation. It maps to HTTP 402.
var errHotelAccessUnpaid = errors.New("ticket does not grant hotel access")

// HotelHandler serves the hotel catalog to eligible attendees.
type HotelHandler struct {
	Enrollments EnrollmentStore
	Tickets     TicketStore
	Hotels      HotelStore

	// EmptyAsNotFound switches GET /v1/hotels to answer 404 on an empty
	// catalog instead of an empty list.
	EmptyAsNotFound bool
}

// NewHotelHandler constructs a HotelHandler. All store dependencies must be
// non-nil.
func NewHotelHandler(enrollments EnrollmentStore, tickets TicketStore, hotels HotelStore, emptyAsNotFound bool) *HotelHandler {
	if enrollments == nil || tickets == nil || hotels == nil {
		panic("nil store passed to NewHotelHandler")
	}
	return &HotelHandler{
		Enrollments:     enrollments,
		Tickets:         tickets,
		Hotels:          hotels,
		EmptyAsNotFound: emptyAsNotFound,
	}
}

// validateHotelAccess resolves enrollment -> ticket -> ticket type for the
// user and checks hotel eligibility: the ticket must be PAID, in-person,
// and include accommodation. Missing enrollment or ticket surfaces the
// repository not-found errors; an existing but non-qualifying ticket
// surfaces errHotelAccessUnpaid. The booking handler runs its own variant
// of this check with a different failure signal; the two are deliberately
// kept separate.
func (h *HotelHandler) validateHotelAccess(ctx context.Context, userID uint64) error {
	enrollment, err := h.Enrollments.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	ticket, err := h.Tickets.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return err
	}
	if ticket.Status != model.TicketStatusPaid || ticket.TicketType.IsRemote || !ticket.TicketType.IncludesHotel {
		return errHotelAccessUnpaid
	}
	return nil
}

// hotelAccessError translates validateHotelAccess failures into responses.
func hotelAccessError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEnrollmentNotFound), errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, errHotelAccessUnpaid):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// ListHotels handles GET /v1/hotels. It gates on hotel eligibility, then
// returns the full catalog.
func (h *HotelHandler) ListHotels(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.validateHotelAccess(ctx, userID); err != nil {
		return hotelAccessError(c, err)
	}
	hotels, err := h.Hotels.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(hotels) == 0 && h.EmptyAsNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no hotels available"})
	}
	return c.JSON(http.StatusOK, hotels)
}

// hotelDetail is the response shape for GET /v1/hotels/:hotelId.
type hotelDetail struct {
	model.Hotel
	Rooms []model.Room `json:"rooms"`
}

// GetHotel handles GET /v1/hotels/:hotelId. It gates on hotel eligibility,
// then returns the hotel with its rooms (possibly empty).
func (h *HotelHandler) GetHotel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.validateHotelAccess(ctx, userID); err != nil {
		return hotelAccessError(c, err)
	}
	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Hotels.ListRooms(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, hotelDetail{Hotel: hotel, Rooms: rooms})
}

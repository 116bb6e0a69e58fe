package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/handler"
	"github.com/iliyamo/event-hotel-reservation/internal/middleware"
)

// APIHandlers groups the authenticated booking API handlers so RegisterAPI
// does not take seven positional arguments.
type APIHandlers struct {
	Enrollments *handler.EnrollmentHandler
	Tickets     *handler.TicketHandler
	Hotels      *handler.HotelHandler
	Bookings    *handler.BookingHandler
	Payments    *handler.PaymentHandler
}

// RegisterAPI registers the authenticated booking endpoints under /v1.
// cache, when non-nil, is applied only to the ticket type catalog: it is
// the one route whose response is identical for every user, and the cache
// key does not vary by caller.
func RegisterAPI(e *echo.Echo, h APIHandlers, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.GET("/enrollments", h.Enrollments.GetEnrollment)

	g.GET("/tickets", h.Tickets.GetTicket)
	g.POST("/tickets", h.Tickets.CreateTicket)
	if cache != nil {
		g.GET("/tickets/types", h.Tickets.ListTicketTypes, cache)
	} else {
		g.GET("/tickets/types", h.Tickets.ListTicketTypes)
	}

	g.GET("/hotels", h.Hotels.ListHotels)
	g.GET("/hotels/:hotelId", h.Hotels.GetHotel)

	g.GET("/booking", h.Bookings.GetBooking)
	g.POST("/booking", h.Bookings.CreateBooking)
	g.PUT("/booking/:bookingId", h.Bookings.UpdateBooking)

	g.GET("/payments", h.Payments.GetPayment)
	g.POST("/payments/process", h.Payments.ProcessPayment)
}

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to HTTP status codes without inspecting driver errors.
package repository

import "errors"

// ErrEnrollmentNotFound is returned when a user has no enrollment record.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrTicketNotFound is returned when no ticket exists for the given
// enrollment or ticket id.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrTicketTypeNotFound is returned when a ticket references a catalog
// entry that does not exist.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// ErrHotelNotFound is returned when a hotel id does not exist.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomNotFound is returned when a room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomFull is returned when a room already holds as many bookings as
// its capacity allows. Handlers translate this into an HTTP 403.
var ErrRoomFull = errors.New("room is at full capacity")

// ErrBookingNotFound is returned when a user has no booking or a booking
// id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPaymentNotFound is returned when no payment has been recorded for a
// ticket yet.
var ErrPaymentNotFound = errors.New("payment not found")

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

func ticketFixture(t *testing.T) (*TicketHandler, *fakeEnrollments, *fakeTickets) {
	t.Helper()
	enrollments := newFakeEnrollments()
	tickets := newFakeTickets()
	tickets.types = []model.TicketType{typeWithHotel, typeRemote, typeNoHotel}
	_, err := enrollments.Create(context.Background(), 7, "Ada Lovelace")
	require.NoError(t, err)
	return NewTicketHandler(enrollments, tickets), enrollments, tickets
}

func TestListTicketTypes(t *testing.T) {
	h, _, _ := ticketFixture(t)

	c, rec := newTestContext(http.MethodGet, "/v1/tickets/types", "", 7)
	require.NoError(t, h.ListTicketTypes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var types []model.TicketType
	require.NoError(t, decodeBody(rec, &types))
	require.Len(t, types, 3)
	assert.True(t, types[1].IsRemote)
}

func TestGetTicketMissing(t *testing.T) {
	h, _, _ := ticketFixture(t)

	// no enrollment
	c, rec := newTestContext(http.MethodGet, "/v1/tickets", "", 99)
	require.NoError(t, h.GetTicket(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// enrolled, no ticket
	c, rec = newTestContext(http.MethodGet, "/v1/tickets", "", 7)
	require.NoError(t, h.GetTicket(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTicketWithType(t *testing.T) {
	h, _, tickets := ticketFixture(t)
	tickets.seed(1, 7, model.TicketStatusPaid, typeWithHotel)

	c, rec := newTestContext(http.MethodGet, "/v1/tickets", "", 7)
	require.NoError(t, h.GetTicket(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Ticket
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, model.TicketStatusPaid, got.Status)
	require.NotNil(t, got.TicketType)
	assert.True(t, got.TicketType.IncludesHotel)
}

func TestCreateTicketValidation(t *testing.T) {
	h, _, _ := ticketFixture(t)

	for _, body := range []string{`{}`, `{"ticket_type_id":0}`, `nope`} {
		c, rec := newTestContext(http.MethodPost, "/v1/tickets", body, 7)
		require.NoError(t, h.CreateTicket(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestCreateTicketUnknownType(t *testing.T) {
	h, _, _ := ticketFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/tickets", `{"ticket_type_id":42}`, 7)
	require.NoError(t, h.CreateTicket(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTicketNoEnrollment(t *testing.T) {
	h, _, _ := ticketFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/tickets", `{"ticket_type_id":1}`, 99)
	require.NoError(t, h.CreateTicket(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTicketReserved(t *testing.T) {
	h, _, _ := ticketFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/tickets", `{"ticket_type_id":1}`, 7)
	require.NoError(t, h.CreateTicket(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Ticket
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, model.TicketStatusReserved, got.Status, "new tickets start RESERVED")
	assert.Equal(t, uint64(1), got.EnrollmentID)
	require.NotNil(t, got.TicketType)
	assert.Equal(t, typeWithHotel.Price, got.TicketType.Price)
}

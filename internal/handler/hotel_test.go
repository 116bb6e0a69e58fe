package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

func hotelFixture(t *testing.T) (*HotelHandler, *fakeTickets, *fakeHotels) {
	t.Helper()
	enrollments := newFakeEnrollments()
	tickets := newFakeTickets()
	hotels := newFakeHotels()
	_, err := enrollments.Create(context.Background(), 7, "Ada Lovelace")
	require.NoError(t, err)
	h := NewHotelHandler(enrollments, tickets, hotels, false)
	return h, tickets, hotels
}

func TestListHotelsRequiresEnrollmentAndTicket(t *testing.T) {
	h, _, _ := hotelFixture(t)

	// no enrollment at all
	c, rec := newTestContext(http.MethodGet, "/v1/hotels", "", 99)
	require.NoError(t, h.ListHotels(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// enrolled but no ticket
	c, rec = newTestContext(http.MethodGet, "/v1/hotels", "", 7)
	require.NoError(t, h.ListHotels(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHotelsPaymentRequired(t *testing.T) {
	cases := []struct {
		name   string
		status model.TicketStatus
		tt     model.TicketType
	}{
		{"unpaid ticket", model.TicketStatusReserved, typeWithHotel},
		{"remote ticket", model.TicketStatusPaid, typeRemote},
		{"ticket without hotel", model.TicketStatusPaid, typeNoHotel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, tickets, hotels := hotelFixture(t)
			hotels.hotels = []model.Hotel{{ID: 1, Name: "Grand"}}
			tickets.seed(1, 7, tc.status, tc.tt)

			c, rec := newTestContext(http.MethodGet, "/v1/hotels", "", 7)
			require.NoError(t, h.ListHotels(c))
			assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		})
	}
}

func TestListHotelsSuccess(t *testing.T) {
	h, tickets, hotels := hotelFixture(t)
	tickets.seed(1, 7, model.TicketStatusPaid, typeWithHotel)
	hotels.hotels = []model.Hotel{
		{ID: 1, Name: "Grand", Image: "https://example.com/grand.jpg"},
		{ID: 2, Name: "Plaza"},
	}

	c, rec := newTestContext(http.MethodGet, "/v1/hotels", "", 7)
	require.NoError(t, h.ListHotels(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Hotel
	require.NoError(t, decodeBody(rec, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Grand", got[0].Name)
}

func TestListHotelsEmptyCatalogPolicy(t *testing.T) {
	// default: empty list with 200
	h, tickets, _ := hotelFixture(t)
	tickets.seed(1, 7, model.TicketStatusPaid, typeWithHotel)

	c, rec := newTestContext(http.MethodGet, "/v1/hotels", "", 7)
	require.NoError(t, h.ListHotels(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// flipped: empty catalog answers 404
	h.EmptyAsNotFound = true
	c, rec = newTestContext(http.MethodGet, "/v1/hotels", "", 7)
	require.NoError(t, h.ListHotels(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHotelInvalidID(t *testing.T) {
	h, tickets, _ := hotelFixture(t)
	tickets.seed(1, 7, model.TicketStatusPaid, typeWithHotel)

	for _, raw := range []string{"abc", "0", "-1"} {
		c, rec := newTestContext(http.MethodGet, "/v1/hotels/"+raw, "", 7)
		c.SetParamNames("hotelId")
		c.SetParamValues(raw)
		require.NoError(t, h.GetHotel(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", raw)
	}
}

func TestGetHotelNotFound(t *testing.T) {
	h, tickets, _ := hotelFixture(t)
	tickets.seed(1, 7, model.TicketStatusPaid, typeWithHotel)

	c, rec := newTestContext(http.MethodGet, "/v1/hotels/9", "", 7)
	c.SetParamNames("hotelId")
	c.SetParamValues("9")
	require.NoError(t, h.GetHotel(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHotelWithRooms(t *testing.T) {
	h, tickets, hotels := hotelFixture(t)
	tickets.seed(1, 7, model.TicketStatusPaid, typeWithHotel)
	hotels.hotels = []model.Hotel{{ID: 1, Name: "Grand"}}
	hotels.rooms[1] = []model.Room{
		{ID: 10, Name: "101", Capacity: 2, HotelID: 1},
		{ID: 11, Name: "102", Capacity: 3, HotelID: 1},
	}

	c, rec := newTestContext(http.MethodGet, "/v1/hotels/1", "", 7)
	c.SetParamNames("hotelId")
	c.SetParamValues("1")
	require.NoError(t, h.GetHotel(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got hotelDetail
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, "Grand", got.Name)
	require.Len(t, got.Rooms, 2)
	assert.Equal(t, 2, got.Rooms[0].Capacity)
}

func TestGetHotelPaymentGateAppliesBeforeLookup(t *testing.T) {
	h, tickets, hotels := hotelFixture(t)
	hotels.hotels = []model.Hotel{{ID: 1, Name: "Grand"}}
	tickets.seed(1, 7, model.TicketStatusReserved, typeWithHotel)

	c, rec := newTestContext(http.MethodGet, "/v1/hotels/1", "", 7)
	c.SetParamNames("hotelId")
	c.SetParamValues("1")
	require.NoError(t, h.GetHotel(c))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

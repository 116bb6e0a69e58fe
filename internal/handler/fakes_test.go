package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
	"github.com/iliyamo/event-hotel-reservation/internal/queue"
	"github.com/iliyamo/event-hotel-reservation/internal/repository"
)

// In-memory store fakes. Each implements just enough of the corresponding
// store interface for the handler tests; unsupported lookups return the
// same sentinel errors the MySQL repositories would.

type fakeUsers struct {
	users  map[string]model.User // by email
	nextID uint64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]model.User{}, nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, email, password string, _ int) (uint64, error) {
	if _, ok := f.users[email]; ok {
		return 0, repository.ErrEmailExists
	}
	id := f.nextID
	f.nextID++
	f.users[email] = model.User{ID: id, Email: email, PasswordHash: password, CreatedAt: time.Now()}
	return id, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

type fakeTokens struct {
	byHash map[string]uint64
}

func newFakeTokens() *fakeTokens { return &fakeTokens{byHash: map[string]uint64{}} }

func (f *fakeTokens) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	f.byHash[hash] = userID
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	uid, ok := f.byHash[hash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return uid, nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	delete(f.byHash, hash)
	return nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	for h, uid := range f.byHash {
		if uid == userID {
			delete(f.byHash, h)
		}
	}
	return nil
}

type fakeEnrollments struct {
	byUser map[uint64]model.Enrollment
	nextID uint64
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{byUser: map[uint64]model.Enrollment{}, nextID: 1}
}

func (f *fakeEnrollments) Create(_ context.Context, userID uint64, name string) (uint64, error) {
	id := f.nextID
	f.nextID++
	f.byUser[userID] = model.Enrollment{ID: id, UserID: userID, Name: name}
	return id, nil
}

func (f *fakeEnrollments) GetByUserID(_ context.Context, userID uint64) (model.Enrollment, error) {
	e, ok := f.byUser[userID]
	if !ok {
		return model.Enrollment{}, repository.ErrEnrollmentNotFound
	}
	return e, nil
}

type fakeTickets struct {
	byEnrollment map[uint64]model.Ticket
	owners       map[uint64]uint64 // ticket id -> user id
	types        []model.TicketType
	nextID       uint64
}

func newFakeTickets() *fakeTickets {
	return &fakeTickets{
		byEnrollment: map[uint64]model.Ticket{},
		owners:       map[uint64]uint64{},
		nextID:       1,
	}
}

func (f *fakeTickets) GetByEnrollmentID(_ context.Context, enrollmentID uint64) (model.Ticket, error) {
	t, ok := f.byEnrollment[enrollmentID]
	if !ok {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTickets) GetByID(_ context.Context, id uint64) (model.Ticket, error) {
	for _, t := range f.byEnrollment {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Ticket{}, repository.ErrTicketNotFound
}

func (f *fakeTickets) OwnerUserID(_ context.Context, ticketID uint64) (uint64, error) {
	uid, ok := f.owners[ticketID]
	if !ok {
		return 0, repository.ErrTicketNotFound
	}
	return uid, nil
}

func (f *fakeTickets) ListTypes(_ context.Context) ([]model.TicketType, error) {
	return f.types, nil
}

func (f *fakeTickets) Create(_ context.Context, enrollmentID, ticketTypeID uint64) (model.Ticket, error) {
	var tt *model.TicketType
	for i := range f.types {
		if f.types[i].ID == ticketTypeID {
			tt = &f.types[i]
		}
	}
	if tt == nil {
		return model.Ticket{}, repository.ErrTicketTypeNotFound
	}
	t := model.Ticket{
		ID:           f.nextID,
		TicketTypeID: ticketTypeID,
		EnrollmentID: enrollmentID,
		Status:       model.TicketStatusReserved,
		TicketType:   tt,
	}
	f.nextID++
	f.byEnrollment[enrollmentID] = t
	return t, nil
}

func (f *fakeTickets) MarkPaid(_ context.Context, ticketID uint64) error {
	for eid, t := range f.byEnrollment {
		if t.ID == ticketID {
			t.Status = model.TicketStatusPaid
			f.byEnrollment[eid] = t
			return nil
		}
	}
	return repository.ErrTicketNotFound
}

// seed installs a ticket owned by userID under enrollmentID.
func (f *fakeTickets) seed(enrollmentID, userID uint64, status model.TicketStatus, tt model.TicketType) model.Ticket {
	t := model.Ticket{
		ID:           f.nextID,
		TicketTypeID: tt.ID,
		EnrollmentID: enrollmentID,
		Status:       status,
		TicketType:   &tt,
	}
	f.nextID++
	f.byEnrollment[enrollmentID] = t
	f.owners[t.ID] = userID
	return t
}

type fakeHotels struct {
	hotels []model.Hotel
	rooms  map[uint64][]model.Room // by hotel id
}

func newFakeHotels() *fakeHotels { return &fakeHotels{rooms: map[uint64][]model.Room{}} }

func (f *fakeHotels) ListAll(_ context.Context) ([]model.Hotel, error) { return f.hotels, nil }

func (f *fakeHotels) GetByID(_ context.Context, id uint64) (model.Hotel, error) {
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Hotel{}, repository.ErrHotelNotFound
}

func (f *fakeHotels) ListRooms(_ context.Context, hotelID uint64) ([]model.Room, error) {
	return f.rooms[hotelID], nil
}

type fakeBookings struct {
	byUser   map[uint64]model.Booking
	rooms    map[uint64]model.Room // by room id
	occupied map[uint64]int        // room id -> bookings
	nextID   uint64
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{
		byUser:   map[uint64]model.Booking{},
		rooms:    map[uint64]model.Room{},
		occupied: map[uint64]int{},
		nextID:   1,
	}
}

func (f *fakeBookings) addRoom(r model.Room, occupied int) {
	f.rooms[r.ID] = r
	f.occupied[r.ID] = occupied
}

func (f *fakeBookings) GetByUser(_ context.Context, userID uint64) (model.Booking, error) {
	b, ok := f.byUser[userID]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) checkCapacity(roomID uint64) error {
	room, ok := f.rooms[roomID]
	if !ok {
		return repository.ErrRoomNotFound
	}
	if f.occupied[roomID] >= room.Capacity {
		return repository.ErrRoomFull
	}
	return nil
}

func (f *fakeBookings) CreateInRoom(_ context.Context, userID, roomID uint64) (uint64, error) {
	if err := f.checkCapacity(roomID); err != nil {
		return 0, err
	}
	id := f.nextID
	f.nextID++
	room := f.rooms[roomID]
	f.byUser[userID] = model.Booking{ID: id, UserID: userID, RoomID: roomID, Room: &room}
	f.occupied[roomID]++
	return id, nil
}

func (f *fakeBookings) MoveToRoom(_ context.Context, bookingID, roomID uint64) (uint64, error) {
	var found bool
	for _, b := range f.byUser {
		if b.ID == bookingID {
			found = true
		}
	}
	if !found {
		return 0, repository.ErrBookingNotFound
	}
	if err := f.checkCapacity(roomID); err != nil {
		return 0, err
	}
	return bookingID, nil
}

type fakePayments struct {
	byTicket map[uint64]model.Payment
	nextID   uint64
}

func newFakePayments() *fakePayments {
	return &fakePayments{byTicket: map[uint64]model.Payment{}, nextID: 1}
}

func (f *fakePayments) Create(_ context.Context, p model.Payment) (model.Payment, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	f.byTicket[p.TicketID] = p
	return p, nil
}

func (f *fakePayments) GetByTicket(_ context.Context, ticketID uint64) (model.Payment, error) {
	p, ok := f.byTicket[ticketID]
	if !ok {
		return model.Payment{}, repository.ErrPaymentNotFound
	}
	return p, nil
}

// fakeEvents is mutex-guarded because the handlers publish from a goroutine.
type fakeEvents struct {
	mu       sync.Mutex
	paid     []queue.TicketPaidEvent
	bookings []queue.BookingCreatedEvent
}

func (f *fakeEvents) PublishTicketPaid(_ context.Context, ev queue.TicketPaidEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, ev)
	return nil
}

func (f *fakeEvents) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, ev)
	return nil
}

func (f *fakeEvents) paidCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paid)
}

func (f *fakeEvents) bookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

// newTestContext builds an echo context with the user_id the JWT middleware
// would have set.
func newTestContext(method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func decodeBody(rec *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}

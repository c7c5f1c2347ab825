package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"conference-booking/internal/data/entity"
	"conference-booking/internal/data/repository"
)

// memStore is an in-memory stand-in for the database. Every statement is
// atomic under mu; transactions are serialized under txMu and restored from a
// snapshot when their unit of work fails.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID      int64
	users       map[int64]*entity.User
	sessions    map[string]*entity.Session
	hotels      map[int64]*entity.Hotel
	rooms       map[int64]*entity.Room
	bookings    map[int64]*entity.Booking
	enrollments map[int64]*entity.Enrollment // by user id
	tickets     map[int64]*entity.Ticket     // by enrollment id
	ticketTypes map[int64]*entity.TicketType

	// occupyErr, when set, fails the next Occupy after the booking write.
	occupyErr error
	// commits counts units of work that committed.
	commits int
}

func newMemStore() *memStore {
	return &memStore{
		nextID:      100,
		users:       map[int64]*entity.User{},
		sessions:    map[string]*entity.Session{},
		hotels:      map[int64]*entity.Hotel{},
		rooms:       map[int64]*entity.Room{},
		bookings:    map[int64]*entity.Booking{},
		enrollments: map[int64]*entity.Enrollment{},
		tickets:     map[int64]*entity.Ticket{},
		ticketTypes: map[int64]*entity.TicketType{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) repository() *repository.Repository {
	repo := s.scoped()
	repo.Tx = &memTransactor{s: s}
	return repo
}

func (s *memStore) scoped() *repository.Repository {
	return &repository.Repository{
		User:       memUsers{s},
		Session:    memSessions{s},
		Hotel:      memHotels{s},
		Room:       memRooms{s},
		Booking:    memBookings{s},
		Enrollment: memEnrollments{s},
		Ticket:     memTickets{s},
	}
}

// ---- fixtures ----

func (s *memStore) addRoom(hotelID int64, capacity int) *entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := &entity.Room{Base: entity.Base{ID: s.id()}, HotelID: hotelID, Name: "room", Capacity: capacity}
	s.rooms[room.ID] = room
	return room
}

func (s *memStore) addHotel(name string) *entity.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	hotel := &entity.Hotel{Base: entity.Base{ID: s.id()}, Name: name, Image: "https://img/" + name}
	s.hotels[hotel.ID] = hotel
	return hotel
}

// addAttendee enrolls userID with a ticket of the given shape.
func (s *memStore) addAttendee(userID int64, status entity.TicketStatus, remote, hotel bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrollment := &entity.Enrollment{Base: entity.Base{ID: s.id()}, UserID: userID, Name: "attendee"}
	tt := &entity.TicketType{Base: entity.Base{ID: s.id()}, Name: "type", Price: 300, IsRemote: remote, IncludesHotel: hotel}
	ticket := &entity.Ticket{Base: entity.Base{ID: s.id()}, EnrollmentID: enrollment.ID, TicketTypeID: tt.ID, Status: status}
	s.enrollments[userID] = enrollment
	s.ticketTypes[tt.ID] = tt
	s.tickets[enrollment.ID] = ticket
}

func (s *memStore) addEligibleAttendee(userID int64) {
	s.addAttendee(userID, entity.TicketStatusPaid, false, true)
}

func (s *memStore) addBooking(userID, roomID int64) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking := &entity.Booking{Base: entity.Base{ID: s.id()}, UserID: userID, RoomID: roomID}
	s.bookings[booking.ID] = booking
	s.rooms[roomID].Capacity--
	return booking
}

func (s *memStore) capacity(roomID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID].Capacity
}

func (s *memStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *memStore) booking(id int64) entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.bookings[id]
}

// ---- transactor ----

type memTransactor struct {
	s *memStore
}

type memSnapshot struct {
	nextID   int64
	rooms    map[int64]entity.Room
	bookings map[int64]entity.Booking
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *repository.Repository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(ctx, t.s.scoped()); err != nil {
		t.s.restore(snap)
		return err
	}

	t.s.mu.Lock()
	t.s.commits++
	t.s.mu.Unlock()
	return nil
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		nextID:   s.nextID,
		rooms:    make(map[int64]entity.Room, len(s.rooms)),
		bookings: make(map[int64]entity.Booking, len(s.bookings)),
	}
	for id, r := range s.rooms {
		snap.rooms[id] = *r
	}
	for id, b := range s.bookings {
		snap.bookings[id] = *b
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.rooms = make(map[int64]*entity.Room, len(snap.rooms))
	for id, r := range snap.rooms {
		r := r
		s.rooms[id] = &r
	}
	s.bookings = make(map[int64]*entity.Booking, len(snap.bookings))
	for id, b := range snap.bookings {
		b := b
		s.bookings[id] = &b
	}
}

// ---- repositories ----

type memRooms struct{ s *memStore }

func (r memRooms) FindByID(_ context.Context, id int64) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *room
	return &cp, nil
}

func (r memRooms) FindByHotelID(_ context.Context, hotelID int64) ([]*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rooms := make([]*entity.Room, 0)
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID {
			cp := *room
			rooms = append(rooms, &cp)
		}
	}
	return rooms, nil
}

func (r memRooms) Occupy(_ context.Context, id int64) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.occupyErr; err != nil {
		r.s.occupyErr = nil
		return nil, err
	}
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, repository.ErrNotFound)
	}
	if room.Capacity <= 0 {
		return nil, fmt.Errorf("room %d: %w", id, repository.ErrNoCapacity)
	}
	room.Capacity--
	cp := *room
	return &cp, nil
}

func (r memRooms) Free(_ context.Context, id int64) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, repository.ErrNotFound)
	}
	room.Capacity++
	cp := *room
	return &cp, nil
}

type memBookings struct{ s *memStore }

func (b memBookings) Create(_ context.Context, booking *entity.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	for _, existing := range b.s.bookings {
		if existing.UserID == booking.UserID {
			return fmt.Errorf("create booking for user %d: %w", booking.UserID, repository.ErrConflict)
		}
	}
	booking.ID = b.s.id()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	cp := *booking
	b.s.bookings[booking.ID] = &cp
	return nil
}

func (b memBookings) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (b memBookings) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return b.FindByID(ctx, id)
}

func (b memBookings) FindByUserID(_ context.Context, userID int64) (*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	for _, booking := range b.s.bookings {
		if booking.UserID == userID {
			cp := *booking
			room := *b.s.rooms[booking.RoomID]
			cp.Room = &room
			return &cp, nil
		}
	}
	return nil, nil
}

func (b memBookings) UpdateRoom(_ context.Context, id, roomID int64) (*entity.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
	}
	booking.RoomID = roomID
	booking.UpdatedAt = time.Now()
	cp := *booking
	return &cp, nil
}

type memEnrollments struct{ s *memStore }

func (e memEnrollments) FindByUserID(_ context.Context, userID int64) (*entity.Enrollment, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	return e.s.enrollments[userID], nil
}

type memTickets struct{ s *memStore }

func (t memTickets) FindByEnrollmentID(_ context.Context, enrollmentID int64) (*entity.Ticket, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.tickets[enrollmentID], nil
}

func (t memTickets) FindTicketType(_ context.Context, ticketID int64) (*entity.TicketType, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, ticket := range t.s.tickets {
		if ticket.ID == ticketID {
			return t.s.ticketTypes[ticket.TicketTypeID], nil
		}
	}
	return nil, fmt.Errorf("ticket %d: %w", ticketID, repository.ErrNotFound)
}

type memHotels struct{ s *memStore }

func (h memHotels) FindAll(_ context.Context) ([]*entity.Hotel, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	hotels := make([]*entity.Hotel, 0, len(h.s.hotels))
	for _, hotel := range h.s.hotels {
		cp := *hotel
		hotels = append(hotels, &cp)
	}
	return hotels, nil
}

func (h memHotels) FindByID(_ context.Context, id int64) (*entity.Hotel, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	hotel, ok := h.s.hotels[id]
	if !ok {
		return nil, nil
	}
	cp := *hotel
	return &cp, nil
}

type memUsers struct{ s *memStore }

func (u memUsers) Create(_ context.Context, user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrConflict)
		}
	}
	user.ID = u.s.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	u.s.users[user.ID] = &cp
	return nil
}

func (u memUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (u memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, user := range u.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

type memSessions struct{ s *memStore }

func (m memSessions) Create(_ context.Context, session *entity.Session) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session.ID = m.s.id()
	session.CreatedAt = time.Now()
	cp := *session
	m.s.sessions[session.Token.String()] = &cp
	return nil
}

func (m memSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session, ok := m.s.sessions[token]
	if !ok || !session.IsActive(time.Now()) {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (m memSessions) Revoke(_ context.Context, token string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session, ok := m.s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session: %w", repository.ErrNotFound)
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (m memSessions) RevokeAllUserSessions(_ context.Context, userID int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	now := time.Now()
	for _, session := range m.s.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (m memSessions) CleanExpiredSessions(_ context.Context) error {
	return nil
}

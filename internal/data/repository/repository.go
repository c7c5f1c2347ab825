package repository

import (
	"conference-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Hotel      HotelRepository
	Room       RoomRepository
	Booking    BookingRepository
	Enrollment EnrollmentRepository
	Ticket     TicketRepository

	// Tx runs units of work that must commit as one. It is nil on the
	// repository handed to such a unit: transactions do not nest.
	Tx Transactor
}

func NewRepository(db database.PgxIface, log *zap.Logger, opts ...TxOption) *Repository {
	repo := newScoped(db, log)
	repo.Tx = NewTransactor(db, log, opts...)
	return repo
}

// newScoped binds every repository to q, which is either the pool or an open transaction.
func newScoped(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(q, log),
		Session:    NewSessionRepository(q, log),
		Hotel:      NewHotelRepository(q, log),
		Room:       NewRoomRepository(q, log),
		Booking:    NewBookingRepository(q, log),
		Enrollment: NewEnrollmentRepository(q, log),
		Ticket:     NewTicketRepository(q, log),
	}
}

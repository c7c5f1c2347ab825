package repository

import (
	"context"
	"errors"
	"fmt"

	"conference-booking/internal/data/entity"
	"conference-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts b and fills its ID and timestamps. A second booking for
	// the same user fails with ErrConflict.
	Create(ctx context.Context, b *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	// FindByIDForUpdate locks the booking row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error)
	// FindByUserID returns the user's booking with Room populated.
	FindByUserID(ctx context.Context, userID int64) (*entity.Booking, error)
	UpdateRoom(ctx context.Context, id, roomID int64) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, room_id, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (user_id, room_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, b.UserID, b.RoomID).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		err = translateDBErr(err)
		if errors.Is(err, ErrConflict) {
			return fmt.Errorf("create booking for user %d: %w", b.UserID, err)
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("user_id", b.UserID),
			zap.Int64("room_id", b.RoomID),
		)
		return fmt.Errorf("create booking for user %d: %w", b.UserID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findByID(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findByID(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) findByID(ctx context.Context, query string, id int64) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
		       r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.user_id = $1
	`

	var booking entity.Booking
	var room entity.Room
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&room.ID,
		&room.HotelID,
		&room.Name,
		&room.Capacity,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find booking by user ID %d: %w", userID, err)
	}

	booking.Room = &room
	return &booking, nil
}

func (r *bookingRepository) UpdateRoom(ctx context.Context, id, roomID int64) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET room_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, roomID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update booking room",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.Int64("room_id", roomID),
		)
		return nil, fmt.Errorf("update booking %d room to %d: %w", id, roomID, translateDBErr(err))
	}

	return booking, nil
}

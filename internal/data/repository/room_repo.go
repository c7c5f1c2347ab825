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

// RoomRepository is the only path through which room capacity changes.
type RoomRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Room, error)
	FindByHotelID(ctx context.Context, hotelID int64) ([]*entity.Room, error)

	// Occupy takes one slot in a single conditional statement. It returns
	// ErrNoCapacity when the room is full and ErrNotFound when it does not exist.
	Occupy(ctx context.Context, id int64) (*entity.Room, error)
	// Free gives one slot back. It returns ErrNotFound when the room does not exist.
	Free(ctx context.Context, id int64) (*entity.Room, error)
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, hotel_id, name, capacity, created_at, updated_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.HotelID,
		&room.Name,
		&room.Capacity,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.Int64("room_id", id),
		)
		return nil, fmt.Errorf("find room by ID %d: %w", id, err)
	}

	return room, nil
}

func (r *roomRepository) FindByHotelID(ctx context.Context, hotelID int64) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, hotelID)
	if err != nil {
		r.log.Error("Failed to find rooms by hotel ID",
			zap.Error(err),
			zap.Int64("hotel_id", hotelID),
		)
		return nil, fmt.Errorf("find rooms by hotel ID %d: %w", hotelID, err)
	}
	defer rows.Close()

	rooms := make([]*entity.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) Occupy(ctx context.Context, id int64) (*entity.Room, error) {
	query := `
		UPDATE rooms
		SET capacity = capacity - 1, updated_at = NOW()
		WHERE id = $1 AND capacity > 0
		RETURNING ` + roomColumns

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missOrFull(ctx, id)
	}
	if err != nil {
		err = translateDBErr(err)
		if errors.Is(err, ErrNoCapacity) {
			return nil, fmt.Errorf("occupy room %d: %w", id, err)
		}
		r.log.Error("Failed to occupy room",
			zap.Error(err),
			zap.Int64("room_id", id),
		)
		return nil, fmt.Errorf("occupy room %d: %w", id, err)
	}

	r.log.Debug("Room occupied",
		zap.Int64("room_id", id),
		zap.Int("capacity", room.Capacity),
	)
	return room, nil
}

// missOrFull explains why the conditional decrement matched no row.
func (r *roomRepository) missOrFull(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)`, id).Scan(&exists); err != nil {
		r.log.Error("Failed to probe room", zap.Error(err), zap.Int64("room_id", id))
		return fmt.Errorf("probe room %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return fmt.Errorf("room %d: %w", id, ErrNoCapacity)
}

func (r *roomRepository) Free(ctx context.Context, id int64) (*entity.Room, error) {
	query := `
		UPDATE rooms
		SET capacity = capacity + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + roomColumns

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to free room",
			zap.Error(err),
			zap.Int64("room_id", id),
		)
		return nil, fmt.Errorf("free room %d: %w", id, translateDBErr(err))
	}

	r.log.Debug("Room freed",
		zap.Int64("room_id", id),
		zap.Int("capacity", room.Capacity),
	)
	return room, nil
}

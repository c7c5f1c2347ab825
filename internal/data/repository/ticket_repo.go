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

// TicketRepository is read-only: tickets are sold and paid elsewhere.
type TicketRepository interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID int64) (*entity.Ticket, error)
	FindTicketType(ctx context.Context, ticketID int64) (*entity.TicketType, error)
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) FindByEnrollmentID(ctx context.Context, enrollmentID int64) (*entity.Ticket, error) {
	query := `
		SELECT id, enrollment_id, ticket_type_id, status, created_at, updated_at
		FROM tickets
		WHERE enrollment_id = $1
	`

	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, query, enrollmentID).Scan(
		&ticket.ID,
		&ticket.EnrollmentID,
		&ticket.TicketTypeID,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by enrollment ID",
			zap.Error(err),
			zap.Int64("enrollment_id", enrollmentID),
		)
		return nil, fmt.Errorf("find ticket by enrollment ID %d: %w", enrollmentID, err)
	}

	return &ticket, nil
}

func (r *ticketRepository) FindTicketType(ctx context.Context, ticketID int64) (*entity.TicketType, error) {
	query := `
		SELECT tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
		FROM tickets t
		JOIN ticket_types tt ON tt.id = t.ticket_type_id
		WHERE t.id = $1
	`

	var ticketType entity.TicketType
	err := r.db.QueryRow(ctx, query, ticketID).Scan(
		&ticketType.ID,
		&ticketType.Name,
		&ticketType.Price,
		&ticketType.IsRemote,
		&ticketType.IncludesHotel,
		&ticketType.CreatedAt,
		&ticketType.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket type",
			zap.Error(err),
			zap.Int64("ticket_id", ticketID),
		)
		return nil, fmt.Errorf("find ticket type for ticket %d: %w", ticketID, err)
	}

	return &ticketType, nil
}

package usecase

import (
	"context"
	"fmt"

	"conference-booking/internal/data/repository"

	"go.uber.org/zap"
)

// EligibilityChecker decides whether a user's ticket grants hotel access.
// Every hotel and booking flow goes through it.
type EligibilityChecker interface {
	// AssertHotelEligible returns ErrNotFound when the user is not enrolled and
	// ErrInvalidTicketType when there is no ticket or the ticket does not grant a room.
	AssertHotelEligible(ctx context.Context, userID int64) error
}

type eligibilityChecker struct {
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
	log         *zap.Logger
}

func NewEligibilityChecker(repo *repository.Repository, log *zap.Logger) EligibilityChecker {
	return &eligibilityChecker{
		enrollments: repo.Enrollment,
		tickets:     repo.Ticket,
		log:         log.With(zap.String("service", "eligibility")),
	}
}

func (c *eligibilityChecker) AssertHotelEligible(ctx context.Context, userID int64) error {
	enrollment, err := c.enrollments.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return fmt.Errorf("enrollment for user %d: %w", userID, ErrNotFound)
	}

	ticket, err := c.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		c.log.Debug("User has no ticket", zap.Int64("user_id", userID))
		return ErrInvalidTicketType
	}

	ticketType, err := c.tickets.FindTicketType(ctx, ticket.ID)
	if err != nil {
		return fmt.Errorf("get ticket type: %w", err)
	}

	if !ticket.GrantsHotel(ticketType) {
		c.log.Debug("Ticket does not grant a hotel room",
			zap.Int64("user_id", userID),
			zap.Int64("ticket_id", ticket.ID),
			zap.String("status", string(ticket.Status)),
		)
		return ErrInvalidTicketType
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"conference-booking/internal/data/entity"
	"conference-booking/internal/data/repository"
	"conference-booking/internal/dto/request"
	"conference-booking/internal/dto/response"
	"conference-booking/pkg/utils"

	"go.uber.org/zap"
)

// BookingService keeps bookings and room capacity consistent: every booking
// holds exactly one slot of the room it references.
type BookingService interface {
	GetUserBooking(ctx context.Context, userID int64) (*response.BookingResponse, error)
	CreateBooking(ctx context.Context, userID int64, req *request.BookingRequest) (*response.BookingIDResponse, error)
	ChangeRoom(ctx context.Context, userID, bookingID int64, req *request.BookingRequest) (*response.BookingIDResponse, error)
}

type bookingService struct {
	repo        *repository.Repository
	eligibility EligibilityChecker
	log         *zap.Logger
}

func NewBookingService(repo *repository.Repository, eligibility EligibilityChecker, log *zap.Logger) BookingService {
	return &bookingService{
		repo:        repo,
		eligibility: eligibility,
		log:         log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetUserBooking(ctx context.Context, userID int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking for user %d: %w", userID, ErrNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID int64, req *request.BookingRequest) (*response.BookingIDResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := s.checkBookingInsertion(ctx, userID, req.RoomID); err != nil {
		return nil, err
	}

	booking := &entity.Booking{UserID: userID, RoomID: req.RoomID}
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		if err := tx.Booking.Create(ctx, booking); err != nil {
			return err
		}
		_, err := tx.Room.Occupy(ctx, req.RoomID)
		return err
	})
	if err != nil {
		return nil, s.ledgerError("create booking", err,
			zap.Int64("user_id", userID),
			zap.Int64("room_id", req.RoomID),
		)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("room_id", req.RoomID),
	)

	return &response.BookingIDResponse{BookingID: booking.ID}, nil
}

// checkBookingInsertion rejects a creation request before anything is written.
func (s *bookingService) checkBookingInsertion(ctx context.Context, userID, roomID int64) error {
	if err := s.eligibility.AssertHotelEligible(ctx, userID); err != nil {
		return err
	}

	if err := s.checkRoom(ctx, roomID); err != nil {
		return err
	}

	existing, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("user %d holds booking %d: %w", userID, existing.ID, ErrAlreadyBooked)
	}

	return nil
}

func (s *bookingService) checkRoom(ctx context.Context, roomID int64) error {
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return fmt.Errorf("room %d: %w", roomID, ErrNotFound)
	}
	if room.IsFull() {
		return fmt.Errorf("room %d: %w", roomID, ErrOutOfCapacity)
	}
	return nil
}

func (s *bookingService) ChangeRoom(ctx context.Context, userID, bookingID int64, req *request.BookingRequest) (*response.BookingIDResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrInvalidBooking)
	}

	room, err := s.repo.Room.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %d: %w", req.RoomID, ErrNotFound)
	}
	if booking.RoomID == req.RoomID {
		return &response.BookingIDResponse{BookingID: booking.ID}, nil
	}
	if room.IsFull() {
		return nil, fmt.Errorf("room %d: %w", req.RoomID, ErrOutOfCapacity)
	}

	var oldRoomID int64
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		locked, err := tx.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if locked == nil || locked.UserID != userID {
			return fmt.Errorf("booking %d: %w", bookingID, ErrInvalidBooking)
		}

		oldRoomID = locked.RoomID
		if oldRoomID == req.RoomID {
			return nil
		}

		if _, err := tx.Room.Free(ctx, oldRoomID); err != nil {
			return err
		}
		if _, err := tx.Room.Occupy(ctx, req.RoomID); err != nil {
			return err
		}
		_, err = tx.Booking.UpdateRoom(ctx, bookingID, req.RoomID)
		return err
	})
	if err != nil {
		return nil, s.ledgerError("change room", err,
			zap.Int64("booking_id", bookingID),
			zap.Int64("user_id", userID),
			zap.Int64("room_id", req.RoomID),
		)
	}

	s.log.Info("Booking room changed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("from_room_id", oldRoomID),
		zap.Int64("to_room_id", req.RoomID),
	)

	return &response.BookingIDResponse{BookingID: bookingID}, nil
}

// ledgerError maps a failed unit of work onto the booking outcomes.
func (s *bookingService) ledgerError(op string, err error, fields ...zap.Field) error {
	switch {
	case errors.Is(err, ErrInvalidBooking):
		return err
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%s: %w", op, ErrAlreadyBooked)
	case errors.Is(err, repository.ErrNoCapacity):
		return fmt.Errorf("%s: %w", op, ErrOutOfCapacity)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.log.Error("Booking transaction failed", append(fields, zap.String("op", op), zap.Error(err))...)
	return fmt.Errorf("%s: %w", op, err)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"conference-booking/internal/data/repository"
	"conference-booking/internal/dto/response"
	"conference-booking/pkg/cache"

	"go.uber.org/zap"
)

type HotelService interface {
	ListHotels(ctx context.Context, userID int64) ([]response.HotelResponse, error)
	GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (*response.HotelWithRoomsResponse, error)
}

type hotelService struct {
	repo        *repository.Repository
	eligibility EligibilityChecker
	cache       *cache.Cache
	ttl         time.Duration
	log         *zap.Logger
}

// NewHotelService builds the hotel service. A nil cache reads the listing
// straight from the database.
func NewHotelService(repo *repository.Repository, eligibility EligibilityChecker, c *cache.Cache, ttl time.Duration, log *zap.Logger) HotelService {
	return &hotelService{
		repo:        repo,
		eligibility: eligibility,
		cache:       c,
		ttl:         ttl,
		log:         log.With(zap.String("service", "hotel")),
	}
}

func (s *hotelService) ListHotels(ctx context.Context, userID int64) ([]response.HotelResponse, error) {
	if err := s.eligibility.AssertHotelEligible(ctx, userID); err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.loadHotels(ctx)
	}

	hotels, err := cache.GetOrSetJSON(ctx, s.cache, cache.KeyHotels(), s.ttl, s.loadHotels)
	if err != nil {
		s.log.Warn("Hotel cache unavailable, reading database", zap.Error(err))
		return s.loadHotels(ctx)
	}
	return hotels, nil
}

func (s *hotelService) loadHotels(ctx context.Context) ([]response.HotelResponse, error) {
	hotels, err := s.repo.Hotel.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	out := make([]response.HotelResponse, len(hotels))
	for i, hotel := range hotels {
		out[i] = response.HotelToResponse(hotel)
	}
	return out, nil
}

// GetHotelWithRooms always reads live capacity.
func (s *hotelService) GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (*response.HotelWithRoomsResponse, error) {
	if err := s.eligibility.AssertHotelEligible(ctx, userID); err != nil {
		return nil, err
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("get hotel: %w", err)
	}
	if hotel == nil {
		return nil, fmt.Errorf("hotel %d: %w", hotelID, ErrNotFound)
	}

	rooms, err := s.repo.Room.FindByHotelID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("get hotel rooms: %w", err)
	}
	hotel.Rooms = rooms

	resp := response.HotelWithRoomsToResponse(hotel)
	return &resp, nil
}

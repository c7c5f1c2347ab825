package usecase

import (
	"conference-booking/internal/data/repository"
	"conference-booking/pkg/cache"
	"conference-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Hotel   HotelService
	Booking BookingService
}

// NewService wires every use case over repo. hotelCache may be nil.
func NewService(repo *repository.Repository, hotelCache *cache.Cache, config *utils.Config, log *zap.Logger) *Service {
	eligibility := NewEligibilityChecker(repo, log)

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Hotel:   NewHotelService(repo, eligibility, hotelCache, config.Hotel.CacheTTL, log),
		Booking: NewBookingService(repo, eligibility, log),
	}
}

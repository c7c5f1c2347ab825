package adaptor

import (
	"conference-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Hotel   *HotelHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Hotel:   NewHotelHandler(service.Hotel, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

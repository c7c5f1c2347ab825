package wire

import (
	"conference-booking/internal/adaptor"
	"conference-booking/internal/data/repository"
	"conference-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHotel(
	r chi.Router,
	hotelHandler *adaptor.HotelHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/hotels", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", hotelHandler.ListHotels)
		r.Get("/{hotelId}", hotelHandler.GetHotel)
	})
}

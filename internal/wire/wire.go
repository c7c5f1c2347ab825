package wire

import (
	"context"
	"net/http"
	"time"

	"conference-booking/internal/adaptor"
	"conference-booking/internal/data/repository"
	"conference-booking/internal/usecase"
	"conference-booking/pkg/cache"
	"conference-booking/pkg/middleware"
	"conference-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. hotelCache may be nil.
func Wiring(repo *repository.Repository, db Pinger, hotelCache *cache.Cache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, hotelCache, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, repo, db, config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireHotel(r, handler.Hotel, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)

	r.Get("/health", healthHandler(db, logger))

	return r
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseUnavailable(w, "database unavailable")
			return
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}

package adaptor

import (
	"errors"
	"net/http"

	"conference-booking/internal/usecase"
	"conference-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HotelHandler struct {
	service usecase.HotelService
	log     *zap.Logger
}

func NewHotelHandler(service usecase.HotelService, log *zap.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log.With(zap.String("handler", "hotel")),
	}
}

// ListHotels handles GET /hotels (protected)
func (h *HotelHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	hotels, err := h.service.ListHotels(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list hotels")
		return
	}

	utils.ResponseSuccess(w, "success", hotels)
}

// GetHotel handles GET /hotels/{hotelId} (protected)
func (h *HotelHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	hotelID, ok := utils.ParseID(chi.URLParam(r, "hotelId"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid hotel ID", nil)
		return
	}

	hotel, err := h.service.GetHotelWithRooms(r.Context(), userID, hotelID)
	if err != nil {
		h.handleServiceError(w, err, "get hotel")
		return
	}

	utils.ResponseSuccess(w, "success", hotel)
}

func (h *HotelHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidTicketType):
		h.log.Warn(operation+" failed - ticket excludes hotel", zap.Error(err))
		utils.ResponsePaymentRequired(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"conference-booking/internal/dto/request"
	"conference-booking/internal/usecase"
	"conference-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetBooking handles GET /booking (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.GetUserBooking(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CreateBooking handles POST /booking (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req, ok := decodeBookingRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.CreateBooking(r.Context(), userID, req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ChangeRoom handles PUT /booking/{bookingId} (protected)
func (h *BookingHandler) ChangeRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, ok := utils.ParseID(chi.URLParam(r, "bookingId"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	req, ok := decodeBookingRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ChangeRoom(r.Context(), userID, bookingID, req)
	if err != nil {
		h.handleServiceError(w, err, "change room")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

func decodeBookingRequest(w http.ResponseWriter, r *http.Request) (*request.BookingRequest, bool) {
	var req request.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return nil, false
	}

	return &req, true
}

// handleServiceError maps booking outcomes onto HTTP statuses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidTicketType),
		errors.Is(err, usecase.ErrOutOfCapacity),
		errors.Is(err, usecase.ErrAlreadyBooked),
		errors.Is(err, usecase.ErrInvalidBooking):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

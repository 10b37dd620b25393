package get_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	bookingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/bookings"
)

const (
	msgBookingNotFound = "reserva no encontrada"
	msgMissingID       = "falta el identificador de la reserva"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByID GET /api/v1/admin/bookings/{bookingId}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, bookingsService.ErrBookingNotFound) {
			h.logger.Warn("GET /admin/bookings/{id} - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /admin/bookings/{id} - Failed to get booking id=%s: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

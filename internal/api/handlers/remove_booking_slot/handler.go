package remove_booking_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	bookingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/bookings"
	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidSlot        = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgBookingNotFound    = "reserva no encontrada"
	msgSlotNotFound       = "la reserva no incluye esa fecha y hora"
)

// RemoveSlotRequest HTTP request model
type RemoveSlotRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	InstructorID int64  `json:"instructorId"`
}

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

// Handle DELETE /api/v1/admin/bookings/{bookingId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]

	var req RemoveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /admin/bookings/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/{id}/slots - Invalid time %q: %v", req.Time, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.RemoveSlot(r.Context(), id, &models.RemoveSlotRequest{
		Slot: domain.TimeSlot{Date: req.Date, Time: t, InstructorID: req.InstructorID},
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/{id}/slots - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/bookings/{id}/slots - Slot not found: id=%s, %s %s", id, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)
		default:
			h.logger.Error("DELETE /admin/bookings/{id}/slots - Failed for booking id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id}/slots - Slot removed: id=%s, %s %s", id, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, result)
}

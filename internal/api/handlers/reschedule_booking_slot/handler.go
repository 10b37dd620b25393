package reschedule_booking_slot

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
	msgDuplicateSlot      = "la reserva ya incluye la nueva fecha y hora"
)

// SlotPayload HTTP модель слота
type SlotPayload struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	InstructorID int64  `json:"instructorId"`
}

// RescheduleSlotRequest HTTP request model
type RescheduleSlotRequest struct {
	OldSlot SlotPayload `json:"oldSlot"`
	NewSlot SlotPayload `json:"newSlot"`
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]

	var req RescheduleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	oldSlot, err := toDomainSlot(req.OldSlot)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/slots - Invalid old slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}
	newSlot, err := toDomainSlot(req.NewSlot)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/slots - Invalid new slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.RescheduleSlot(r.Context(), id, &models.RescheduleSlotRequest{
		OldSlot: oldSlot,
		NewSlot: newSlot,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/slots - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/slots - Slot not found: id=%s", id)
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, bookingsService.ErrDuplicateSlot):
			h.logger.Warn("PATCH /admin/bookings/{id}/slots - Duplicate slot: id=%s", id)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateSlot)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/slots - Invalid input: id=%s, %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/slots - Failed for booking id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/slots - Slot rescheduled: id=%s, %s %s -> %s %s",
		id, req.OldSlot.Date, req.OldSlot.Time, req.NewSlot.Date, req.NewSlot.Time)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func toDomainSlot(p SlotPayload) (domain.TimeSlot, error) {
	t, err := types.NewTimeStringFromString(p.Time)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	return domain.TimeSlot{Date: p.Date, Time: t, InstructorID: p.InstructorID}, nil
}

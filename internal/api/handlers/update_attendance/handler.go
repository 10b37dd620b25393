package update_attendance

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
	msgInvalidStatus      = "estado de asistencia inválido, se espera attended o no-show"
	msgBookingNotFound    = "reserva no encontrada"
	msgSlotNotFound       = "la reserva no incluye esa fecha y hora"
)

// UpdateAttendanceRequest HTTP request model
type UpdateAttendanceRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	InstructorID int64  `json:"instructorId"`
	Status       string `json:"status"` // "attended" | "no-show"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]

	var req UpdateAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.UpdateAttendance(r.Context(), id, &models.UpdateAttendanceRequest{
		Slot:   domain.TimeSlot{Date: req.Date, Time: t, InstructorID: req.InstructorID},
		Status: domain.AttendanceStatus(req.Status),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Slot not found: id=%s, %s %s", id, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, bookingsService.ErrInvalidAttendance):
			h.logger.Warn("PATCH /admin/bookings/{id}/attendance - Invalid status %q: id=%s", req.Status, id)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/attendance - Failed for booking id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/attendance - Attendance updated: id=%s, %s %s -> %s",
		id, req.Date, req.Time, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

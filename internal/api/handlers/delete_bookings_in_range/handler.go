package delete_bookings_in_range

import (
	"errors"
	"net/http"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	bookingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/bookings"
	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidRange       = "la fecha final debe ser posterior o igual a la inicial"
)

// DeleteInRangeRequest HTTP request model
type DeleteInRangeRequest struct {
	StartDate string `json:"startDate"` // "2026-09-01"
	EndDate   string `json:"endDate"`   // "2026-09-07"
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

// Handle POST /api/v1/admin/bookings/delete-range
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DeleteInRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/delete-range - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.DeleteInRange(r.Context(), &models.DeleteInRangeRequest{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidTimeRange):
			h.logger.Warn("POST /admin/bookings/delete-range - Invalid range: %s to %s", req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/delete-range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("POST /admin/bookings/delete-range - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/delete-range - Completed: deleted=%d, trimmed=%d",
		result.DeletedBookings, result.TrimmedBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}

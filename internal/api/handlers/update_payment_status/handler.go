package update_payment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	bookingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/bookings"
	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgBookingNotFound    = "reserva no encontrada"
	msgInvalidInput       = "datos del pago inválidos"
)

// UpdatePaymentRequest HTTP request model
type UpdatePaymentRequest struct {
	IsPaid bool    `json:"isPaid"`
	Method string  `json:"method,omitempty"` // "Cash" | "Card" | "Transfer" | "Manual"
	Amount float64 `json:"amount,omitempty"`
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["bookingId"]

	var req UpdatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.BookingResponse
	var err error
	if req.IsPaid {
		method := domain.PaymentMethod(req.Method)
		if method == "" {
			method = domain.PaymentManual
		}
		result, err = h.service.MarkPaid(r.Context(), id, &models.MarkPaidRequest{
			Method: method,
			Amount: req.Amount,
		})
	} else {
		result, err = h.service.MarkUnpaid(r.Context(), id)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/payment - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/payment - Invalid input: id=%s, %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/payment - Failed for booking id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/payment - Payment status updated: id=%s, isPaid=%t", id, req.IsPaid)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	createBooking "github.com/ceramicalma/ALMA-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidSlot        = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgProductNotFound    = "producto no encontrado"
	msgProductNotBookable = "este producto no admite reservas"
	msgDuplicateBooking   = "ya tienes una reserva para esta fecha y hora"
	msgSessionFull        = "la clase ya está completa"
	msgSessionNotFound    = "no hay clase programada para esta fecha y hora"
	msgInvalidInput       = "datos de la reserva inválidos"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени слотов)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: email=%s", req.UserInfo.Email)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrSessionFull):
			h.logger.Warn("POST /bookings - Session full: product_id=%d", req.ProductID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFull)

		case errors.Is(err, createBooking.ErrSessionNotFound):
			h.logger.Warn("POST /bookings - Session not found: product_id=%d", req.ProductID)
			handlers.RespondBadRequest(w, msgSessionNotFound)

		case errors.Is(err, createBooking.ErrProductNotFound):
			h.logger.Warn("POST /bookings - Product not found: product_id=%d", req.ProductID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, createBooking.ErrProductNotBookable):
			h.logger.Warn("POST /bookings - Product not bookable: product_id=%d", req.ProductID)
			handlers.RespondBadRequest(w, msgProductNotBookable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: product_id=%d, error=%v", req.ProductID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, code=%s",
		result.ID, result.BookingCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

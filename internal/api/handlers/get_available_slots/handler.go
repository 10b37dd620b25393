package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	getAvailableSlots "github.com/ceramicalma/ALMA-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "falta el parámetro date"
	msgInvalidDate = "formato de fecha inválido, se espera YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query: date (YYYY-MM-DD), includeFull, includePast
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q", dateParam)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:        date,
		IncludeFull: r.URL.Query().Get("includeFull") == "true",
		IncludePast: r.URL.Query().Get("includePast") == "true",
	})
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /available-slots - Failed for date=%s: %v", dateParam, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

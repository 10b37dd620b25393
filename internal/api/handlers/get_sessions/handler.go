package get_sessions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	generateSessions "github.com/ceramicalma/ALMA-BookingService/internal/usecase/generate_sessions"
)

const (
	msgInvalidProductID = "identificador de producto inválido"
	msgInvalidDays      = "parámetro days inválido"
	msgInvalidFrom      = "formato de fecha inválido en from, se espera YYYY-MM-DD"
	msgProductNotFound  = "producto no encontrado"
	msgNotIntroClass    = "este producto no tiene sesiones programadas"
)

type Handler struct {
	useCase GenerateSessionsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSessionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/sessions
// Query: days, from (YYYY-MM-DD), includeFull, includePast
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	req := &generateSessions.Request{
		ProductID:   productID,
		IncludeFull: r.URL.Query().Get("includeFull") == "true",
		IncludePast: r.URL.Query().Get("includePast") == "true",
	}

	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days < 0 || days > domain.AdminGenerationLimitInDays {
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.GenerationLimitInDays = days
	}

	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err := time.Parse(domain.DateFormat, fromParam)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, generateSessions.ErrProductNotFound):
			h.logger.Warn("GET /products/{id}/sessions - Product not found: id=%d", productID)
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, generateSessions.ErrNotIntroductoryClass):
			h.logger.Warn("GET /products/{id}/sessions - Not an introductory class: id=%d", productID)
			handlers.RespondBadRequest(w, msgNotIntroClass)
		case errors.Is(err, generateSessions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDays)
		default:
			h.logger.Error("GET /products/{id}/sessions - Failed for product id=%d: %v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

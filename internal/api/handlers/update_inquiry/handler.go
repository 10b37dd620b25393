package update_inquiry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	inquiriesService "github.com/ceramicalma/ALMA-BookingService/internal/service/inquiries"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInquiryNotFound    = "consulta no encontrada"
	msgInvalidStatus      = "estado de la consulta inválido"
)

// UpdateInquiryRequest HTTP request model
type UpdateInquiryRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service InquiriesService
	logger  Logger
}

func NewHandler(service InquiriesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/inquiries/{inquiryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["inquiryId"]

	var req UpdateInquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/inquiries/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, domain.InquiryStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, inquiriesService.ErrInquiryNotFound):
			h.logger.Warn("PATCH /admin/inquiries/{id} - Inquiry not found: id=%s", id)
			handlers.RespondNotFound(w, msgInquiryNotFound)
		case errors.Is(err, inquiriesService.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/inquiries/{id} - Invalid input: id=%s, %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("PATCH /admin/inquiries/{id} - Failed to update inquiry: id=%s, %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/inquiries/{id} - Inquiry status updated: id=%s, status=%s", id, req.Status)
	w.WriteHeader(http.StatusNoContent)
}

package get_inquiries

import (
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
)

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

// Handle GET /api/v1/admin/inquiries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/inquiries - Failed to list inquiries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, inquiries)
}

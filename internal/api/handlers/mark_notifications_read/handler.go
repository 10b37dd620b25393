package mark_notifications_read

import (
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
)

type Handler struct {
	service NotificationsService
	logger  Logger
}

func NewHandler(service NotificationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/notifications/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(r.Context()); err != nil {
		h.logger.Error("POST /admin/notifications/read - Failed to mark notifications read: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

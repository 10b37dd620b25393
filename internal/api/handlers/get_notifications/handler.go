package get_notifications

import (
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// NotificationListResponse лента админки: системные уведомления и журнал писем
type NotificationListResponse struct {
	Notifications       []*domain.AdminNotification  `json:"notifications"`
	ClientNotifications []*domain.ClientNotification `json:"clientNotifications"`
}

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

// Handle GET /api/v1/admin/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.ListAdmin(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/notifications - Failed to list admin notifications: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	clientNotifications, err := h.service.ListClient(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/notifications - Failed to list client notifications: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NotificationListResponse{
		Notifications:       notifications,
		ClientNotifications: clientNotifications,
	})
}

package update_schedule_settings

import (
	"errors"
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	settingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidSettings    = "configuración inválida"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/schedule-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req settingsService.UpdateScheduleSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.UpdateScheduleSettings(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settingsService.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/schedule-settings - Invalid settings: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSettings)
			return
		}
		h.logger.Error("PUT /admin/schedule-settings - Failed to update settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/schedule-settings - Settings updated")
	handlers.RespondJSON(w, http.StatusOK, settings)
}

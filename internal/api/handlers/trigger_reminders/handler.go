package trigger_reminders

import (
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
)

type Handler struct {
	useCase TriggerRemindersUseCase
	logger  Logger
}

func NewHandler(useCase TriggerRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/trigger-reminders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/trigger-reminders - Reminder run failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

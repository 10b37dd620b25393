package reassign_instructor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	productsService "github.com/ceramicalma/ALMA-BookingService/internal/service/products"
)

const (
	msgInvalidRequestBody  = "cuerpo de la solicitud inválido"
	msgInvalidInstructorID = "identificador de instructor inválido"
	msgInstructorNotFound  = "instructor no encontrado"
	msgSameInstructor      = "el instructor de reemplazo debe ser diferente"
)

// ReassignRequest HTTP request model
type ReassignRequest struct {
	ReplacementID int64 `json:"replacementId"`
}

type Handler struct {
	service ProductsService
	logger  Logger
}

func NewHandler(service ProductsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/instructors/{instructorId}/reassign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	instructorID, err := strconv.ParseInt(mux.Vars(r)["instructorId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	var req ReassignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/instructors/{id}/reassign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.ReassignAndDeleteInstructor(r.Context(), instructorID, req.ReplacementID)
	if err != nil {
		switch {
		case errors.Is(err, productsService.ErrInstructorNotFound):
			h.logger.Warn("POST /admin/instructors/{id}/reassign - Instructor not found: id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)
		case errors.Is(err, productsService.ErrInvalidInput):
			h.logger.Warn("POST /admin/instructors/{id}/reassign - Invalid replacement for id=%d: %v", instructorID, err)
			handlers.RespondBadRequest(w, msgSameInstructor)
		default:
			h.logger.Error("POST /admin/instructors/{id}/reassign - Failed for id=%d: %v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/instructors/{id}/reassign - Instructor %d reassigned to %d and deleted",
		instructorID, req.ReplacementID)
	w.WriteHeader(http.StatusNoContent)
}

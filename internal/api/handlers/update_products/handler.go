package update_products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	productsService "github.com/ceramicalma/ALMA-BookingService/internal/service/products"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidProductID   = "identificador de producto inválido"
	msgProductNotFound    = "producto no encontrado"
	msgNotIntroClass      = "este producto no tiene reglas de programación"
	msgInvalidInput       = "datos del catálogo inválidos"
)

// ReplaceCatalogRequest HTTP request model
type ReplaceCatalogRequest struct {
	Products    []*domain.Product   `json:"products"`
	Instructors []domain.Instructor `json:"instructors"`
}

// UpdateScheduleRequest обновление расписания вводного класса.
// Nil-поле не трогает соответствующую часть.
type UpdateScheduleRequest struct {
	SchedulingRules []domain.SchedulingRule  `json:"schedulingRules,omitempty"`
	Overrides       []domain.SessionOverride `json:"overrides,omitempty"`
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

// Handle PUT /api/v1/admin/products
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCatalogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ReplaceCatalog(r.Context(), req.Products, req.Instructors); err != nil {
		if errors.Is(err, productsService.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/products - Invalid catalog: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("PUT /admin/products - Failed to replace catalog: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/products - Catalog replaced: %d products, %d instructors",
		len(req.Products), len(req.Instructors))
	handlers.RespondJSON(w, http.StatusOK, req)
}

// HandleSchedule PATCH /api/v1/admin/products/{productId}/schedule
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/products/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.SchedulingRules != nil {
		if err := h.service.UpdateSchedulingRules(r.Context(), productID, req.SchedulingRules); err != nil {
			h.respondScheduleError(w, productID, err)
			return
		}
	}
	if req.Overrides != nil {
		if err := h.service.UpdateOverrides(r.Context(), productID, req.Overrides); err != nil {
			h.respondScheduleError(w, productID, err)
			return
		}
	}

	h.logger.Info("PATCH /admin/products/{id}/schedule - Schedule updated: id=%d", productID)
	handlers.RespondJSON(w, http.StatusOK, req)
}

func (h *Handler) respondScheduleError(w http.ResponseWriter, productID int64, err error) {
	switch {
	case errors.Is(err, productsService.ErrProductNotFound):
		h.logger.Warn("PATCH /admin/products/{id}/schedule - Product not found: id=%d", productID)
		handlers.RespondNotFound(w, msgProductNotFound)
	case errors.Is(err, productsService.ErrNotIntroductoryClass):
		h.logger.Warn("PATCH /admin/products/{id}/schedule - Not an introductory class: id=%d", productID)
		handlers.RespondBadRequest(w, msgNotIntroClass)
	case errors.Is(err, productsService.ErrInvalidInput):
		h.logger.Warn("PATCH /admin/products/{id}/schedule - Invalid input for id=%d: %v", productID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("PATCH /admin/products/{id}/schedule - Failed for id=%d: %v", productID, err)
		handlers.RespondInternalError(w)
	}
}

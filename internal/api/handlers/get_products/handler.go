package get_products

import (
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// ProductListResponse ответ витрины: каталог и инструкторы одним запросом
type ProductListResponse struct {
	Products    []*domain.Product    `json:"products"`
	Instructors []*domain.Instructor `json:"instructors"`
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

// Handle GET /api/v1/products
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /products - Failed to list products: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	instructors, err := h.service.Instructors(r.Context())
	if err != nil {
		h.logger.Error("GET /products - Failed to list instructors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ProductListResponse{
		Products:    products,
		Instructors: instructors,
	})
}

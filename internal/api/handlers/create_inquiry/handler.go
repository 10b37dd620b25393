package create_inquiry

import (
	"errors"
	"net/http"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	inquiriesService "github.com/ceramicalma/ALMA-BookingService/internal/service/inquiries"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidInput       = "datos de la consulta inválidos"
)

// CreateInquiryRequest HTTP request model
type CreateInquiryRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CountryCode   string `json:"countryCode"`
	Participants  int    `json:"participants"`
	TentativeDate string `json:"tentativeDate,omitempty"`
	EventType     string `json:"eventType,omitempty"`
	Message       string `json:"message"`
	InquiryType   string `json:"inquiryType"`
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

// Handle POST /api/v1/inquiries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /inquiries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	inquiry, err := h.service.Create(r.Context(), &inquiriesService.CreateInquiryRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CountryCode:   req.CountryCode,
		Participants:  req.Participants,
		TentativeDate: req.TentativeDate,
		EventType:     req.EventType,
		Message:       req.Message,
		InquiryType:   domain.InquiryType(req.InquiryType),
	})
	if err != nil {
		switch {
		case errors.Is(err, inquiriesService.ErrInvalidInput):
			h.logger.Warn("POST /inquiries - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /inquiries - Failed to create inquiry: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /inquiries - Inquiry created: id=%s, type=%s", inquiry.ID, inquiry.InquiryType)
	handlers.RespondJSON(w, http.StatusCreated, inquiry)
}

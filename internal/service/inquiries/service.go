package inquiries

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	inquiryRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/inquiry"
)

// Service сервис запросов на групповые мероприятия
type Service struct {
	inquiryRepo      InquiryRepository
	notificationRepo NotificationRepository
	logger           Logger
	timeProvider     TimeProvider
}

// NewService создает новый экземпляр сервиса запросов
func NewService(
	inquiryRepo InquiryRepository,
	notificationRepo NotificationRepository,
	logger Logger,
) *Service {
	return &Service{
		inquiryRepo:      inquiryRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
		timeProvider:     &RealTimeProvider{},
	}
}

// CreateInquiryRequest входные данные нового запроса
type CreateInquiryRequest struct {
	Name          string
	Email         string
	Phone         string
	CountryCode   string
	Participants  int
	TentativeDate string
	EventType     string
	Message       string
	InquiryType   domain.InquiryType
}

// Create регистрирует запрос на групповое мероприятие и добавляет
// уведомление в ленту администратора
func (s *Service) Create(ctx context.Context, req *CreateInquiryRequest) (*domain.GroupInquiry, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	inquiry := &domain.GroupInquiry{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CountryCode:   req.CountryCode,
		Participants:  req.Participants,
		TentativeDate: req.TentativeDate,
		EventType:     req.EventType,
		Message:       req.Message,
		Status:        domain.InquiryNew,
		CreatedAt:     s.timeProvider.Now(),
		InquiryType:   req.InquiryType,
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// Уведомление не критично: запрос уже сохранен
	notification := &domain.AdminNotification{
		ID:        uuid.NewString(),
		Type:      domain.NotificationNewInquiry,
		TargetID:  inquiry.ID,
		UserName:  inquiry.Name,
		Summary:   string(inquiry.InquiryType),
		Timestamp: inquiry.CreatedAt,
	}
	if err := s.notificationRepo.CreateAdmin(ctx, notification); err != nil {
		s.logger.Warn("Create: failed to create admin notification: inquiry_id=%s, error=%v", inquiry.ID, err)
	}

	s.logger.Info("Create: inquiry created: id=%s, type=%s, participants=%d",
		inquiry.ID, inquiry.InquiryType, inquiry.Participants)
	return inquiry, nil
}

// List получает все запросы, новые первыми
func (s *Service) List(ctx context.Context) ([]*domain.GroupInquiry, error) {
	inquiries, err := s.inquiryRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return inquiries, nil
}

// UpdateStatus изменяет статус запроса
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	if id == "" {
		return fmt.Errorf("%w: inquiry id is required", ErrInvalidInput)
	}
	if !domain.ValidInquiryStatus(status) {
		return fmt.Errorf("%w: unknown inquiry status %q", ErrInvalidInput, status)
	}

	if err := s.inquiryRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, inquiryRepo.ErrInquiryNotFound) {
			return ErrInquiryNotFound
		}
		s.logger.Error("UpdateStatus: repository error: id=%s, %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: inquiry status updated: id=%s, status=%s", id, status)
	return nil
}

// validateCreateRequest валидирует входные данные запроса
func validateCreateRequest(req *CreateInquiryRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	if req.Participants <= 0 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	if !domain.ValidInquiryType(req.InquiryType) {
		return fmt.Errorf("%w: unknown inquiry type %q", ErrInvalidInput, req.InquiryType)
	}

	if req.TentativeDate != "" {
		if _, err := time.Parse(domain.DateFormat, req.TentativeDate); err != nil {
			return fmt.Errorf("%w: invalid tentative date %q", ErrInvalidInput, req.TentativeDate)
		}
	}

	return nil
}

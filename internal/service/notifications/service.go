package notifications

import (
	"context"
	"fmt"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// Service сервис уведомлений админки
type Service struct {
	notificationRepo NotificationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notificationRepo NotificationRepository, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListAdmin получает ленту уведомлений администратора
func (s *Service) ListAdmin(ctx context.Context) ([]*domain.AdminNotification, error) {
	notifications, err := s.notificationRepo.ListAdmin(ctx)
	if err != nil {
		s.logger.Error("ListAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAdmin - repository error: %v", ErrInternal, err)
	}
	return notifications, nil
}

// MarkAllRead помечает все уведомления администратора прочитанными
func (s *Service) MarkAllRead(ctx context.Context) error {
	if err := s.notificationRepo.MarkAllRead(ctx); err != nil {
		s.logger.Error("MarkAllRead: repository error: %v", err)
		return fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("MarkAllRead: all notifications marked as read")
	return nil
}

// ListClient получает журнал клиентских писем
func (s *Service) ListClient(ctx context.Context) ([]*domain.ClientNotification, error) {
	notifications, err := s.notificationRepo.ListClient(ctx)
	if err != nil {
		s.logger.Error("ListClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClient - repository error: %v", ErrInternal, err)
	}
	return notifications, nil
}

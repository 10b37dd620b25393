package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
)

// Service сервис настроек студии.
// Чтение подставляет значения по умолчанию для еще не сохраненных ключей,
// запись валидирует и сохраняет только переданные секции.
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetScheduleSettings собирает все настройки расписания одним ответом
func (s *Service) GetScheduleSettings(ctx context.Context) (*ScheduleSettings, error) {
	result := &ScheduleSettings{
		Availability:      domain.WeeklyAvailability{},
		ScheduleOverrides: domain.ScheduleOverrides{},
		ClassCapacity:     domain.ClassCapacity{Max: domain.DefaultClassCapacity},
		CapacityMessages:  domain.DefaultCapacityMessages(),
	}

	availability, err := s.settingsRepo.GetAvailability(ctx)
	if err == nil {
		result.Availability = availability
	} else if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, s.internal("GetScheduleSettings", "availability", err)
	}

	overrides, err := s.settingsRepo.GetScheduleOverrides(ctx)
	if err == nil {
		result.ScheduleOverrides = overrides
	} else if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, s.internal("GetScheduleSettings", "schedule overrides", err)
	}

	capacity, err := s.settingsRepo.GetClassCapacity(ctx)
	if err == nil && capacity.Max > 0 {
		result.ClassCapacity = capacity
	} else if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, s.internal("GetScheduleSettings", "class capacity", err)
	}

	messages, err := s.settingsRepo.GetCapacityMessages(ctx)
	if err == nil && len(messages.Thresholds) > 0 {
		result.CapacityMessages = messages
	} else if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, s.internal("GetScheduleSettings", "capacity messages", err)
	}

	automation, err := s.settingsRepo.GetAutomationSettings(ctx)
	if err == nil {
		result.AutomationSettings = automation
	} else if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		result.AutomationSettings = domain.DefaultAutomationSettings()
	} else {
		return nil, s.internal("GetScheduleSettings", "automation settings", err)
	}

	bank, err := s.settingsRepo.GetBankDetails(ctx)
	if err == nil {
		result.BankDetails = bank
	} else if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, s.internal("GetScheduleSettings", "bank details", err)
	}

	message, err := s.settingsRepo.GetConfirmationMessage(ctx)
	if err == nil {
		result.ConfirmationMessage = message
	} else if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, s.internal("GetScheduleSettings", "confirmation message", err)
	}

	return result, nil
}

// UpdateScheduleSettings сохраняет переданные секции настроек
func (s *Service) UpdateScheduleSettings(ctx context.Context, req *UpdateScheduleSettingsRequest) (*ScheduleSettings, error) {
	s.logger.Info("UpdateScheduleSettings: updating schedule settings")

	if req.Availability != nil {
		if err := validateAvailability(*req.Availability); err != nil {
			s.logger.Warn("UpdateScheduleSettings: invalid availability: %v", err)
			return nil, err
		}
		if err := s.settingsRepo.SaveAvailability(ctx, *req.Availability); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "availability", err)
		}
	}

	if req.ScheduleOverrides != nil {
		if err := validateScheduleOverrides(*req.ScheduleOverrides); err != nil {
			s.logger.Warn("UpdateScheduleSettings: invalid schedule overrides: %v", err)
			return nil, err
		}
		if err := s.settingsRepo.SaveScheduleOverrides(ctx, *req.ScheduleOverrides); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "schedule overrides", err)
		}
	}

	if req.ClassCapacity != nil {
		if req.ClassCapacity.Max < domain.MinSessionCapacity || req.ClassCapacity.Max > domain.MaxSessionCapacity {
			return nil, fmt.Errorf("%w: class capacity must be %d..%d",
				ErrInvalidInput, domain.MinSessionCapacity, domain.MaxSessionCapacity)
		}
		if err := s.settingsRepo.SaveClassCapacity(ctx, *req.ClassCapacity); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "class capacity", err)
		}
	}

	if req.CapacityMessages != nil {
		if err := validateCapacityMessages(*req.CapacityMessages); err != nil {
			s.logger.Warn("UpdateScheduleSettings: invalid capacity messages: %v", err)
			return nil, err
		}
		if err := s.settingsRepo.SaveCapacityMessages(ctx, *req.CapacityMessages); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "capacity messages", err)
		}
	}

	if req.AutomationSettings != nil {
		if err := s.settingsRepo.SaveAutomationSettings(ctx, *req.AutomationSettings); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "automation settings", err)
		}
	}

	if req.BankDetails != nil {
		if err := s.settingsRepo.SaveBankDetails(ctx, *req.BankDetails); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "bank details", err)
		}
	}

	if req.ConfirmationMessage != nil {
		if err := s.settingsRepo.SaveConfirmationMessage(ctx, *req.ConfirmationMessage); err != nil {
			return nil, s.internal("UpdateScheduleSettings", "confirmation message", err)
		}
	}

	return s.GetScheduleSettings(ctx)
}

func (s *Service) internal(op, part string, err error) error {
	s.logger.Error("%s: failed to access %s: %v", op, part, err)
	return fmt.Errorf("%w: %s - %s: %v", ErrInternal, op, part, err)
}

// validateAvailability проверяет недельный шаблон
func validateAvailability(availability domain.WeeklyAvailability) error {
	known := make(map[domain.DayKey]struct{}, len(domain.DayKeys))
	for _, day := range domain.DayKeys {
		known[day] = struct{}{}
	}

	for day, slots := range availability {
		if _, ok := known[day]; !ok {
			return fmt.Errorf("%w: unknown day key %q", ErrInvalidInput, day)
		}
		for _, slot := range slots {
			if err := slot.Time.Validate(); err != nil {
				return fmt.Errorf("%w: invalid slot time on %s: %v", ErrInvalidInput, day, err)
			}
		}
	}
	return nil
}

// validateScheduleOverrides проверяет переопределения по датам
func validateScheduleOverrides(overrides domain.ScheduleOverrides) error {
	for date, override := range overrides {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return fmt.Errorf("%w: invalid override date %q", ErrInvalidInput, date)
		}
		if override.Capacity != nil && (*override.Capacity < domain.MinSessionCapacity || *override.Capacity > domain.MaxSessionCapacity) {
			return fmt.Errorf("%w: override capacity for %s must be %d..%d",
				ErrInvalidInput, date, domain.MinSessionCapacity, domain.MaxSessionCapacity)
		}
		for _, slot := range override.Slots {
			if err := slot.Time.Validate(); err != nil {
				return fmt.Errorf("%w: invalid override slot time on %s: %v", ErrInvalidInput, date, err)
			}
		}
	}
	return nil
}

// validateCapacityMessages проверяет пороги заполненности
func validateCapacityMessages(settings domain.CapacityMessageSettings) error {
	if len(settings.Thresholds) == 0 {
		return fmt.Errorf("%w: at least one threshold is required", ErrInvalidInput)
	}
	for _, t := range settings.Thresholds {
		if t.Threshold < 0 || t.Threshold > domain.MaxThresholdPercent {
			return fmt.Errorf("%w: threshold must be 0..%d", ErrInvalidInput, domain.MaxThresholdPercent)
		}
		if t.Message == "" {
			return fmt.Errorf("%w: threshold message is required", ErrInvalidInput)
		}
	}
	return nil
}

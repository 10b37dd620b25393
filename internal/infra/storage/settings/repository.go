package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	"github.com/ceramicalma/ALMA-BookingService/pkg/dbmetrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/psqlbuilder"
)

// Ключи таблицы settings(key, value jsonb)
const (
	keyAvailableSlots      = "available_slots"
	keyScheduleOverrides   = "schedule_overrides"
	keyClassCapacity       = "class_capacity"
	keyCapacityMessages    = "capacity_messages_config"
	keyAutomationSettings  = "automation_settings"
	keyBankDetails         = "bank_details"
	keyConfirmationMessage = "confirmation_message"
)

// Repository репозиторий настроек студии поверх таблицы key/value с JSONB значениями.
// Типизированные методы скрывают ключи от вызывающего кода.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAvailability возвращает недельный шаблон доступных слотов
func (r *Repository) GetAvailability(ctx context.Context) (domain.WeeklyAvailability, error) {
	var availability domain.WeeklyAvailability
	if err := r.get(ctx, keyAvailableSlots, &availability); err != nil {
		return nil, err
	}
	return availability, nil
}

// SaveAvailability сохраняет недельный шаблон доступных слотов
func (r *Repository) SaveAvailability(ctx context.Context, availability domain.WeeklyAvailability) error {
	return r.save(ctx, keyAvailableSlots, availability)
}

// GetScheduleOverrides возвращает точечные переопределения расписания по датам
func (r *Repository) GetScheduleOverrides(ctx context.Context) (domain.ScheduleOverrides, error) {
	var overrides domain.ScheduleOverrides
	if err := r.get(ctx, keyScheduleOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// SaveScheduleOverrides сохраняет переопределения расписания по датам
func (r *Repository) SaveScheduleOverrides(ctx context.Context, overrides domain.ScheduleOverrides) error {
	return r.save(ctx, keyScheduleOverrides, overrides)
}

// GetClassCapacity возвращает вместимость занятия по умолчанию
func (r *Repository) GetClassCapacity(ctx context.Context) (domain.ClassCapacity, error) {
	var capacity domain.ClassCapacity
	if err := r.get(ctx, keyClassCapacity, &capacity); err != nil {
		return domain.ClassCapacity{}, err
	}
	return capacity, nil
}

// SaveClassCapacity сохраняет вместимость занятия по умолчанию
func (r *Repository) SaveClassCapacity(ctx context.Context, capacity domain.ClassCapacity) error {
	return r.save(ctx, keyClassCapacity, capacity)
}

// GetCapacityMessages возвращает пороги заполненности и тексты сообщений
func (r *Repository) GetCapacityMessages(ctx context.Context) (domain.CapacityMessageSettings, error) {
	var settings domain.CapacityMessageSettings
	if err := r.get(ctx, keyCapacityMessages, &settings); err != nil {
		return domain.CapacityMessageSettings{}, err
	}
	return settings, nil
}

// SaveCapacityMessages сохраняет пороги заполненности и тексты сообщений
func (r *Repository) SaveCapacityMessages(ctx context.Context, settings domain.CapacityMessageSettings) error {
	return r.save(ctx, keyCapacityMessages, settings)
}

// GetAutomationSettings возвращает тумблеры автоматических уведомлений
func (r *Repository) GetAutomationSettings(ctx context.Context) (domain.AutomationSettings, error) {
	var settings domain.AutomationSettings
	if err := r.get(ctx, keyAutomationSettings, &settings); err != nil {
		return domain.AutomationSettings{}, err
	}
	return settings, nil
}

// SaveAutomationSettings сохраняет тумблеры автоматических уведомлений
func (r *Repository) SaveAutomationSettings(ctx context.Context, settings domain.AutomationSettings) error {
	return r.save(ctx, keyAutomationSettings, settings)
}

// GetBankDetails возвращает банковские реквизиты студии для писем предоплаты
func (r *Repository) GetBankDetails(ctx context.Context) (domain.BankDetails, error) {
	var details domain.BankDetails
	if err := r.get(ctx, keyBankDetails, &details); err != nil {
		return domain.BankDetails{}, err
	}
	return details, nil
}

// SaveBankDetails сохраняет банковские реквизиты студии
func (r *Repository) SaveBankDetails(ctx context.Context, details domain.BankDetails) error {
	return r.save(ctx, keyBankDetails, details)
}

// GetConfirmationMessage возвращает текст подтверждения бронирования
func (r *Repository) GetConfirmationMessage(ctx context.Context) (string, error) {
	var message string
	if err := r.get(ctx, keyConfirmationMessage, &message); err != nil {
		return "", err
	}
	return message, nil
}

// SaveConfirmationMessage сохраняет текст подтверждения бронирования
func (r *Repository) SaveConfirmationMessage(ctx context.Context, message string) error {
	return r.save(ctx, keyConfirmationMessage, message)
}

func (r *Repository) get(ctx context.Context, key string, dest interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: get %s - build select query: %v", ErrBuildQuery, key, err)
	}

	var value []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSettingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: get %s - execute query: %v", ErrExecQuery, key, err)
	}

	if err := json.Unmarshal(value, dest); err != nil {
		return fmt.Errorf("%w: get %s - unmarshal value: %v", ErrScanRow, key, err)
	}

	return nil
}

func (r *Repository) save(ctx context.Context, key string, value interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrMarshal, key, err)
	}

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(key, data).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: save %s - build upsert query: %v", ErrBuildQuery, key, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: save %s - execute upsert: %v", ErrExecQuery, key, err)
	}

	return nil
}

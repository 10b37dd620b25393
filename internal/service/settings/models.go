package settings

import "github.com/ceramicalma/ALMA-BookingService/internal/domain"

// ScheduleSettings все настройки расписания одним ответом для админки
type ScheduleSettings struct {
	Availability        domain.WeeklyAvailability      `json:"availableSlots"`
	ScheduleOverrides   domain.ScheduleOverrides       `json:"scheduleOverrides"`
	ClassCapacity       domain.ClassCapacity           `json:"classCapacity"`
	CapacityMessages    domain.CapacityMessageSettings `json:"capacityMessagesConfig"`
	AutomationSettings  domain.AutomationSettings      `json:"automationSettings"`
	BankDetails         domain.BankDetails             `json:"bankDetails"`
	ConfirmationMessage string                         `json:"confirmationMessage"`
}

// UpdateScheduleSettingsRequest частичное обновление: nil-поля не трогаются
type UpdateScheduleSettingsRequest struct {
	Availability        *domain.WeeklyAvailability      `json:"availableSlots,omitempty"`
	ScheduleOverrides   *domain.ScheduleOverrides       `json:"scheduleOverrides,omitempty"`
	ClassCapacity       *domain.ClassCapacity           `json:"classCapacity,omitempty"`
	CapacityMessages    *domain.CapacityMessageSettings `json:"capacityMessagesConfig,omitempty"`
	AutomationSettings  *domain.AutomationSettings      `json:"automationSettings,omitempty"`
	BankDetails         *domain.BankDetails             `json:"bankDetails,omitempty"`
	ConfirmationMessage *string                         `json:"confirmationMessage,omitempty"`
}

package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
	"github.com/ceramicalma/ALMA-BookingService/pkg/ptr"
)

// fakeSettingsRepo stores each section in memory; unset sections report
// ErrSettingNotFound like the real repository does.
type fakeSettingsRepo struct {
	availability *domain.WeeklyAvailability
	overrides    *domain.ScheduleOverrides
	capacity     *domain.ClassCapacity
	messages     *domain.CapacityMessageSettings
	automation   *domain.AutomationSettings
	bank         *domain.BankDetails
	confirmation *string
}

func (f *fakeSettingsRepo) GetAvailability(_ context.Context) (domain.WeeklyAvailability, error) {
	if f.availability == nil {
		return nil, settingsRepo.ErrSettingNotFound
	}
	return *f.availability, nil
}

func (f *fakeSettingsRepo) SaveAvailability(_ context.Context, a domain.WeeklyAvailability) error {
	f.availability = &a
	return nil
}

func (f *fakeSettingsRepo) GetScheduleOverrides(_ context.Context) (domain.ScheduleOverrides, error) {
	if f.overrides == nil {
		return nil, settingsRepo.ErrSettingNotFound
	}
	return *f.overrides, nil
}

func (f *fakeSettingsRepo) SaveScheduleOverrides(_ context.Context, o domain.ScheduleOverrides) error {
	f.overrides = &o
	return nil
}

func (f *fakeSettingsRepo) GetClassCapacity(_ context.Context) (domain.ClassCapacity, error) {
	if f.capacity == nil {
		return domain.ClassCapacity{}, settingsRepo.ErrSettingNotFound
	}
	return *f.capacity, nil
}

func (f *fakeSettingsRepo) SaveClassCapacity(_ context.Context, c domain.ClassCapacity) error {
	f.capacity = &c
	return nil
}

func (f *fakeSettingsRepo) GetCapacityMessages(_ context.Context) (domain.CapacityMessageSettings, error) {
	if f.messages == nil {
		return domain.CapacityMessageSettings{}, settingsRepo.ErrSettingNotFound
	}
	return *f.messages, nil
}

func (f *fakeSettingsRepo) SaveCapacityMessages(_ context.Context, m domain.CapacityMessageSettings) error {
	f.messages = &m
	return nil
}

func (f *fakeSettingsRepo) GetAutomationSettings(_ context.Context) (domain.AutomationSettings, error) {
	if f.automation == nil {
		return domain.AutomationSettings{}, settingsRepo.ErrSettingNotFound
	}
	return *f.automation, nil
}

func (f *fakeSettingsRepo) SaveAutomationSettings(_ context.Context, a domain.AutomationSettings) error {
	f.automation = &a
	return nil
}

func (f *fakeSettingsRepo) GetBankDetails(_ context.Context) (domain.BankDetails, error) {
	if f.bank == nil {
		return domain.BankDetails{}, settingsRepo.ErrSettingNotFound
	}
	return *f.bank, nil
}

func (f *fakeSettingsRepo) SaveBankDetails(_ context.Context, b domain.BankDetails) error {
	f.bank = &b
	return nil
}

func (f *fakeSettingsRepo) GetConfirmationMessage(_ context.Context) (string, error) {
	if f.confirmation == nil {
		return "", settingsRepo.ErrSettingNotFound
	}
	return *f.confirmation, nil
}

func (f *fakeSettingsRepo) SaveConfirmationMessage(_ context.Context, m string) error {
	f.confirmation = &m
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestGetScheduleSettings_Defaults(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, noopLogger{})

	settings, err := svc.GetScheduleSettings(context.Background())

	require.NoError(t, err)
	assert.Empty(t, settings.Availability)
	assert.Equal(t, domain.DefaultClassCapacity, settings.ClassCapacity.Max)
	assert.Equal(t, domain.DefaultCapacityMessages(), settings.CapacityMessages)
	assert.Equal(t, domain.DefaultAutomationSettings(), settings.AutomationSettings)
	assert.Empty(t, settings.ConfirmationMessage)
}

func TestUpdateScheduleSettings_PartialUpdate(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, noopLogger{})

	capacity := domain.ClassCapacity{Max: 10}
	message := "¡Nos vemos en el taller!"

	settings, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
		ClassCapacity:       &capacity,
		ConfirmationMessage: &message,
	})

	require.NoError(t, err)
	assert.Equal(t, 10, settings.ClassCapacity.Max)
	assert.Equal(t, message, settings.ConfirmationMessage)
	assert.Nil(t, repo.availability, "untouched sections stay unset")
	// Automation was not written, so the read falls back to defaults.
	assert.Equal(t, domain.DefaultAutomationSettings(), settings.AutomationSettings)
}

func TestUpdateScheduleSettings_Availability(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, noopLogger{})

	availability := domain.WeeklyAvailability{
		domain.Monday: []domain.AvailableSlot{{Time: "10:00", InstructorID: 1}},
	}

	settings, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
		Availability: &availability,
	})

	require.NoError(t, err)
	assert.Equal(t, availability, settings.Availability)
}

func TestUpdateScheduleSettings_InvalidAvailability(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, noopLogger{})

	tests := []struct {
		name         string
		availability domain.WeeklyAvailability
	}{
		{
			name: "unknown day key",
			availability: domain.WeeklyAvailability{
				"Lunes": []domain.AvailableSlot{{Time: "10:00", InstructorID: 1}},
			},
		},
		{
			name: "bad slot time",
			availability: domain.WeeklyAvailability{
				domain.Monday: []domain.AvailableSlot{{Time: "10am", InstructorID: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
				Availability: &tt.availability,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateScheduleSettings_InvalidCapacity(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, noopLogger{})

	for _, max := range []int{0, -1, domain.MaxSessionCapacity + 1} {
		capacity := domain.ClassCapacity{Max: max}
		_, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
			ClassCapacity: &capacity,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestUpdateScheduleSettings_InvalidScheduleOverrides(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, noopLogger{})

	tests := []struct {
		name      string
		overrides domain.ScheduleOverrides
	}{
		{name: "bad date key", overrides: domain.ScheduleOverrides{
			"15/03/2026": {},
		}},
		{name: "zero capacity", overrides: domain.ScheduleOverrides{
			"2026-03-15": {Capacity: ptr.Ptr(0)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
				ScheduleOverrides: &tt.overrides,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateScheduleSettings_InvalidCapacityMessages(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, noopLogger{})

	tests := []struct {
		name     string
		settings domain.CapacityMessageSettings
	}{
		{name: "no thresholds", settings: domain.CapacityMessageSettings{}},
		{name: "threshold out of range", settings: domain.CapacityMessageSettings{
			Thresholds: []domain.CapacityThreshold{{Level: domain.CapacityFew, Threshold: 150, Message: "x"}},
		}},
		{name: "empty message", settings: domain.CapacityMessageSettings{
			Thresholds: []domain.CapacityThreshold{{Level: domain.CapacityFew, Threshold: 50}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
				CapacityMessages: &tt.settings,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateScheduleSettings_RoundTrip(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, noopLogger{})

	automation := domain.DefaultAutomationSettings()
	automation.ClassReminder.Value = 48
	bank := domain.BankDetails{BankName: "Banco Azul", AccountHolder: "Cerámica ALMA"}

	_, err := svc.UpdateScheduleSettings(context.Background(), &UpdateScheduleSettingsRequest{
		AutomationSettings: &automation,
		BankDetails:        &bank,
	})
	require.NoError(t, err)

	settings, err := svc.GetScheduleSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 48, settings.AutomationSettings.ClassReminder.Value)
	assert.Equal(t, "Banco Azul", settings.BankDetails.BankName)
}

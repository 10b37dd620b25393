package trigger_reminders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
)

type fakeBookingRepo struct {
	paid []*domain.Booking
}

func (f *fakeBookingRepo) ListPaid(_ context.Context) ([]*domain.Booking, error) {
	return f.paid, nil
}

type fakeSettingsRepo struct {
	automation *domain.AutomationSettings
}

func (f *fakeSettingsRepo) GetAutomationSettings(_ context.Context) (domain.AutomationSettings, error) {
	if f.automation == nil {
		return domain.AutomationSettings{}, settingsRepo.ErrSettingNotFound
	}
	return *f.automation, nil
}

type fakeNotificationRepo struct {
	keys    map[string]struct{}
	journal []*domain.ClientNotification
}

func (f *fakeNotificationRepo) CreateClient(_ context.Context, n *domain.ClientNotification) error {
	f.journal = append(f.journal, n)
	return nil
}

func (f *fakeNotificationRepo) ListReminderKeys(_ context.Context) (map[string]struct{}, error) {
	if f.keys == nil {
		f.keys = make(map[string]struct{})
	}
	return f.keys, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendClassReminder(_ context.Context, booking *domain.Booking, slot domain.TimeSlot) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, booking.BookingCode+"_"+slot.Key())
	return nil
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Default lead is 24 hours; the slot below starts 10 hours after testNow.
var testNow = time.Date(2026, 3, 22, 8, 0, 0, 0, time.Local)

func paidBooking(code string, slots ...domain.TimeSlot) *domain.Booking {
	return &domain.Booking{
		ID:          "id-" + code,
		BookingCode: code,
		IsPaid:      true,
		UserInfo:    domain.UserInfo{FirstName: "Lucía", LastName: "Fernández", Email: "lucia@example.com"},
		Slots:       slots,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, settings *fakeSettingsRepo,
	notifications *fakeNotificationRepo, mailer *fakeMailer) *UseCase {
	uc := NewUseCase(bookings, settings, notifications, mailer, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_SendsRemindersInWindow(t *testing.T) {
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-22", Time: "18:00", InstructorID: 1}, // in window
			domain.TimeSlot{Date: "2026-03-25", Time: "10:00", InstructorID: 1}, // too far out
		),
	}}
	notifications := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{}, notifications, mailer)

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.SentCount)
	assert.Equal(t, 0, resp.SkippedCount)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "C-ALMA-AAAA0001_2026-03-22_18:00", mailer.sent[0])

	require.Len(t, notifications.journal, 1)
	entry := notifications.journal[0]
	assert.Equal(t, domain.ClientClassReminder, entry.Type)
	assert.Equal(t, "C-ALMA-AAAA0001_2026-03-22_18:00", entry.BookingCode)
}

func TestExecute_AlreadySentSkipped(t *testing.T) {
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-22", Time: "18:00", InstructorID: 1},
		),
	}}
	notifications := &fakeNotificationRepo{keys: map[string]struct{}{
		"C-ALMA-AAAA0001_2026-03-22_18:00": {},
	}}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{}, notifications, mailer)

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.SentCount)
	assert.Empty(t, mailer.sent)
}

func TestExecute_RunIsIdempotent(t *testing.T) {
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-22", Time: "18:00", InstructorID: 1},
		),
	}}
	notifications := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{}, notifications, mailer)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.SentCount)
	assert.Zero(t, second.SentCount)
	assert.Len(t, mailer.sent, 1)
}

func TestExecute_PastSlotNotReminded(t *testing.T) {
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-22", Time: "07:00", InstructorID: 1},
		),
	}}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{}, &fakeNotificationRepo{}, mailer)

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.SentCount)
	assert.Empty(t, mailer.sent, "sessions already started get no reminder")
}

func TestExecute_AutomationDisabled(t *testing.T) {
	automation := domain.DefaultAutomationSettings()
	automation.ClassReminder.Enabled = false
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-22", Time: "18:00", InstructorID: 1},
		),
	}}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{automation: &automation}, &fakeNotificationRepo{}, mailer)

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.SentCount)
	assert.Empty(t, mailer.sent)
}

func TestExecute_LeadInDays(t *testing.T) {
	automation := domain.DefaultAutomationSettings()
	automation.ClassReminder = domain.TimedAutomation{Enabled: true, Value: 3, Unit: "days"}
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-24", Time: "18:00", InstructorID: 1},
		),
	}}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{automation: &automation}, &fakeNotificationRepo{}, mailer)

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.SentCount, "72-hour lead reaches two days ahead")
}

func TestExecute_MailFailureCountsSkipped(t *testing.T) {
	bookings := &fakeBookingRepo{paid: []*domain.Booking{
		paidBooking("C-ALMA-AAAA0001",
			domain.TimeSlot{Date: "2026-03-22", Time: "18:00", InstructorID: 1},
		),
	}}
	notifications := &fakeNotificationRepo{}
	uc := newTestUseCase(bookings, &fakeSettingsRepo{}, notifications, &fakeMailer{err: assert.AnError})

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.SentCount)
	assert.Equal(t, 1, resp.SkippedCount)
	assert.Empty(t, notifications.journal, "failed sends are not journaled and stay retryable")
}

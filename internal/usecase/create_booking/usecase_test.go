package create_booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
	"github.com/ceramicalma/ALMA-BookingService/pkg/ptr"
)

// --- fakes ---

type fakeBookingRepo struct {
	byEmail     []*domain.Booking
	bySlotDates []*domain.Booking
	created     *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) ListByEmail(_ context.Context, _ string) ([]*domain.Booking, error) {
	return f.byEmail, nil
}

func (f *fakeBookingRepo) ListBySlotDates(_ context.Context, _ []string) ([]*domain.Booking, error) {
	return f.bySlotDates, nil
}

type fakeProductRepo struct {
	product *domain.Product
	err     error
}

func (f *fakeProductRepo) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return f.product, f.err
}

type fakeSettingsRepo struct {
	availability domain.WeeklyAvailability
	overrides    domain.ScheduleOverrides
	capacity     domain.ClassCapacity
	automation   *domain.AutomationSettings
}

func (f *fakeSettingsRepo) GetAvailability(_ context.Context) (domain.WeeklyAvailability, error) {
	if f.availability == nil {
		return nil, settingsRepo.ErrSettingNotFound
	}
	return f.availability, nil
}

func (f *fakeSettingsRepo) GetScheduleOverrides(_ context.Context) (domain.ScheduleOverrides, error) {
	if f.overrides == nil {
		return nil, settingsRepo.ErrSettingNotFound
	}
	return f.overrides, nil
}

func (f *fakeSettingsRepo) GetClassCapacity(_ context.Context) (domain.ClassCapacity, error) {
	if f.capacity.Max == 0 {
		return domain.ClassCapacity{}, settingsRepo.ErrSettingNotFound
	}
	return f.capacity, nil
}

func (f *fakeSettingsRepo) GetAutomationSettings(_ context.Context) (domain.AutomationSettings, error) {
	if f.automation == nil {
		return domain.AutomationSettings{}, settingsRepo.ErrSettingNotFound
	}
	return *f.automation, nil
}

func (f *fakeSettingsRepo) GetBankDetails(_ context.Context) (domain.BankDetails, error) {
	return domain.BankDetails{BankName: "Banco Test"}, nil
}

type fakeNotificationRepo struct {
	admin  []*domain.AdminNotification
	client []*domain.ClientNotification
}

func (f *fakeNotificationRepo) CreateAdmin(_ context.Context, n *domain.AdminNotification) error {
	f.admin = append(f.admin, n)
	return nil
}

func (f *fakeNotificationRepo) CreateClient(_ context.Context, n *domain.ClientNotification) error {
	f.client = append(f.client, n)
	return nil
}

type fakeMailer struct {
	sent int
	err  error
}

func (f *fakeMailer) SendPreBookingConfirmation(_ context.Context, _ *domain.Booking, _ domain.BankDetails) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

var testNow = time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

func introProduct() *domain.Product {
	return &domain.Product{
		ID:       1,
		Type:     domain.ProductIntroClass,
		Name:     "Clase Introductoria",
		IsActive: true,
		SchedulingRules: []domain.SchedulingRule{
			// 2026-03-02 is a Monday.
			{ID: "r1", DayOfWeek: 1, Time: "10:00", InstructorID: 1, Capacity: 2},
		},
	}
}

func packageProduct() *domain.Product {
	return &domain.Product{
		ID:       2,
		Type:     domain.ProductClassPackage,
		Name:     "Bono 4 Clases",
		Classes:  ptr.Ptr(4),
		IsActive: true,
	}
}

func validRequest(product *domain.Product, slots []domain.TimeSlot) *Request {
	return &Request{
		ProductID: product.ID,
		Slots:     slots,
		UserInfo: domain.UserInfo{
			FirstName: "Lucía",
			LastName:  "Fernández",
			Email:     "lucia@example.com",
			Phone:     "600111222",
		},
		Price: 45,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, products *fakeProductRepo, settings *fakeSettingsRepo,
	notifications *fakeNotificationRepo, mailer *fakeMailer) *UseCase {
	uc := NewUseCase(bookings, products, settings, notifications, mailer, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// --- tests ---

func TestExecute_IntroClassSuccess(t *testing.T) {
	bookings := &fakeBookingRepo{}
	notifications := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, notifications, mailer)

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	resp, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.ExpiryDate)
	assert.Equal(t, testNow, resp.CreatedAt)
	require.NotNil(t, bookings.created)
	assert.Equal(t, "Clase Introductoria", bookings.created.Product.Name)
	// Only class packages carry a mode; the stored row keeps NULL here.
	assert.Nil(t, bookings.created.BookingMode)

	// Post-commit side effects: admin feed entry and pre-booking email journal.
	require.Len(t, notifications.admin, 1)
	assert.Equal(t, domain.NotificationNewBooking, notifications.admin[0].Type)
	assert.Equal(t, 1, mailer.sent)
	require.Len(t, notifications.client, 1)
	assert.Equal(t, domain.ClientPreBookingConfirmation, notifications.client[0].Type)
}

func TestExecute_BookingCodeFormat(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	resp, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^C-ALMA-[0-9A-Z]{8}$`), resp.BookingCode)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	existing := &domain.Booking{
		ProductType: domain.ProductIntroClass,
		Slots:       []domain.TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 99}},
	}
	bookings := &fakeBookingRepo{byEmail: []*domain.Booking{existing}}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	// Same date and time, different instructor: still a conflict.
	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Nil(t, bookings.created)
}

func TestExecute_SubscriptionSkipsConflictCheck(t *testing.T) {
	existing := &domain.Booking{
		ProductType: domain.ProductIntroClass,
		Slots:       []domain.TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}},
	}
	bookings := &fakeBookingRepo{byEmail: []*domain.Booking{existing}}
	subscription := &domain.Product{ID: 3, Type: domain.ProductOpenStudio, Name: "Taller Libre", IsActive: true}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: subscription}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := uc.Execute(context.Background(), validRequest(subscription, nil))

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SessionFull(t *testing.T) {
	// Capacity is 2 and two bookings (one pending) already hold the session.
	taken := []*domain.Booking{
		{IsPaid: true, Slots: []domain.TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}}},
		{IsPaid: false, Slots: []domain.TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}}},
	}
	bookings := &fakeBookingRepo{bySlotDates: taken}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	assert.ErrorIs(t, err, ErrSessionFull)
	assert.Nil(t, bookings.created)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	// Tuesday slot: the single rule only generates Monday sessions.
	slot := domain.TimeSlot{Date: "2026-03-03", Time: "10:00", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_ClassPackageUsesWeeklyTemplate(t *testing.T) {
	bookings := &fakeBookingRepo{}
	settings := &fakeSettingsRepo{
		availability: domain.WeeklyAvailability{
			domain.Monday: []domain.AvailableSlot{{Time: "10:00", InstructorID: 1}},
		},
		capacity: domain.ClassCapacity{Max: 8},
	}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: packageProduct()}, settings, &fakeNotificationRepo{}, &fakeMailer{})

	slots := []domain.TimeSlot{
		{Date: "2026-03-09", Time: "10:00", InstructorID: 1},
		{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
	}
	resp, err := uc.Execute(context.Background(), validRequest(packageProduct(), slots))

	require.NoError(t, err)
	// Slots come back sorted; expiry anchored to the earliest.
	assert.Equal(t, "2026-03-02", resp.Slots[0].Date)
	require.NotNil(t, resp.ExpiryDate)
	assert.Equal(t, "2026-04-01", resp.ExpiryDate.Format(domain.DateFormat))
}

func TestExecute_ClassPackageSlotOutsideTemplate(t *testing.T) {
	settings := &fakeSettingsRepo{
		availability: domain.WeeklyAvailability{
			domain.Monday: []domain.AvailableSlot{{Time: "10:00", InstructorID: 1}},
		},
		capacity: domain.ClassCapacity{Max: 8},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProductRepo{product: packageProduct()}, settings, &fakeNotificationRepo{}, &fakeMailer{})

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "18:30", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(packageProduct(), []domain.TimeSlot{slot}))

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_InactiveProduct(t *testing.T) {
	product := introProduct()
	product.IsActive = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProductRepo{product: product}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(product, []domain.TimeSlot{slot}))

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})
	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "missing first name", mutate: func(r *Request) { r.UserInfo.FirstName = "" }},
		{name: "bad email", mutate: func(r *Request) { r.UserInfo.Email = "not-an-email" }},
		{name: "negative price", mutate: func(r *Request) { r.Price = -1 }},
		{name: "duplicate slots in request", mutate: func(r *Request) {
			r.Slots = append(r.Slots, domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 2})
		}},
		{name: "unknown booking mode", mutate: func(r *Request) {
			r.BookingMode = ptr.Ptr(domain.BookingMode("weekly"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(introProduct(), []domain.TimeSlot{slot})
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_EmailFailureDoesNotFailBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	notifications := &fakeNotificationRepo{}
	mailer := &fakeMailer{err: assert.AnError}
	uc := newTestUseCase(bookings, &fakeProductRepo{product: introProduct()}, &fakeSettingsRepo{}, notifications, mailer)

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	require.NoError(t, err)
	assert.NotNil(t, bookings.created)
	assert.Empty(t, notifications.client, "failed sends are not journaled")
}

func TestExecute_AutomationDisabledSkipsEmail(t *testing.T) {
	automation := domain.DefaultAutomationSettings()
	automation.PreBookingConfirmation.Enabled = false
	mailer := &fakeMailer{}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProductRepo{product: introProduct()},
		&fakeSettingsRepo{automation: &automation}, &fakeNotificationRepo{}, mailer)

	slot := domain.TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}
	_, err := uc.Execute(context.Background(), validRequest(introProduct(), []domain.TimeSlot{slot}))

	require.NoError(t, err)
	assert.Zero(t, mailer.sent)
}

func TestNewBookingCode_Deterministic(t *testing.T) {
	code := newBookingCode(testNow)
	assert.Regexp(t, regexp.MustCompile(`^C-ALMA-[0-9A-Z]{8}$`), code)

	other := newBookingCode(testNow)
	assert.NotEqual(t, code, other, "random suffix must differ between calls")
}

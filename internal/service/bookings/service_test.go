package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	bookingRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

// --- fakes ---

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking
	order    []string

	updatedSlots map[string][]domain.TimeSlot
	payments     map[string]*domain.PaymentDetails
	attendance   map[string]domain.AttendanceStatus
	deleted      []string
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		bookings:     make(map[string]*domain.Booking),
		updatedSlots: make(map[string][]domain.TimeSlot),
		payments:     make(map[string]*domain.PaymentDetails),
		attendance:   make(map[string]domain.AttendanceStatus),
	}
	for _, b := range bookings {
		f.bookings[b.ID] = b
		f.order = append(f.order, b.ID)
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) List(_ context.Context) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(f.order))
	for _, id := range f.order {
		if b, ok := f.bookings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateUserInfo(_ context.Context, id string, userInfo domain.UserInfo, price float64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.UserInfo = userInfo
	b.Price = price
	return nil
}

func (f *fakeBookingRepo) UpdateSlots(_ context.Context, id string, slots []domain.TimeSlot) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Slots = slots
	f.updatedSlots[id] = slots
	return nil
}

func (f *fakeBookingRepo) UpdatePayment(_ context.Context, id string, isPaid bool, details *domain.PaymentDetails) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.IsPaid = isPaid
	b.PaymentDetails = details
	f.payments[id] = details
	return nil
}

func (f *fakeBookingRepo) MergeAttendance(_ context.Context, id string, slotKey string, status domain.AttendanceStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Attendance == nil {
		b.Attendance = make(map[string]domain.AttendanceStatus)
	}
	b.Attendance[slotKey] = status
	f.attendance[slotKey] = status
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
	return nil
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
	client []*domain.ClientNotification
}

func (f *fakeNotificationRepo) CreateClient(_ context.Context, n *domain.ClientNotification) error {
	f.client = append(f.client, n)
	return nil
}

type fakeMailer struct {
	receipts int
	err      error
}

func (f *fakeMailer) SendPaymentReceipt(_ context.Context, _ *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.receipts++
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

var testNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func packageBooking(id string, slots ...domain.TimeSlot) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ProductID:   2,
		ProductType: domain.ProductClassPackage,
		Slots:       slots,
		UserInfo:    domain.UserInfo{FirstName: "Lucía", LastName: "Fernández", Email: "lucia@example.com"},
		Price:       90,
		Product:     domain.Product{ID: 2, Name: "Bono 4 Clases"},
		BookingCode: "C-ALMA-TEST0001",
		CreatedAt:   testNow.AddDate(0, 0, -3),
	}
}

func newTestService(repo *fakeBookingRepo, settings *fakeSettingsRepo, notifications *fakeNotificationRepo, mailer *fakeMailer) *Service {
	svc := NewService(repo, settings, notifications, mailer, &fakeTxManager{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

// --- tests ---

func TestRemoveSlot_KeepsEmptyBooking(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := svc.RemoveSlot(context.Background(), "b1", &models.RemoveSlotRequest{
		Slot: domain.TimeSlot{Date: "2026-03-23", Time: "10:00"},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, repo.deleted, "slotless booking must survive")
	assert.Len(t, repo.updatedSlots["b1"], 0)
}

func TestRemoveSlot_SlotNotFound(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	svc := newTestService(newFakeBookingRepo(booking), &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	_, err := svc.RemoveSlot(context.Background(), "b1", &models.RemoveSlotRequest{
		Slot: domain.TimeSlot{Date: "2026-03-24", Time: "10:00"},
	})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRescheduleSlot(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
		domain.TimeSlot{Date: "2026-03-30", Time: "10:00", InstructorID: 1},
	)
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := svc.RescheduleSlot(context.Background(), "b1", &models.RescheduleSlotRequest{
		OldSlot: domain.TimeSlot{Date: "2026-03-30", Time: "10:00"},
		NewSlot: domain.TimeSlot{Date: "2026-03-21", Time: "18:30", InstructorID: 2},
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	// Result comes back sorted; the moved slot lands first.
	assert.Equal(t, "2026-03-21", resp.Slots[0].Date)
	assert.Equal(t, "2026-03-23", resp.Slots[1].Date)
}

func TestRescheduleSlot_DuplicateTarget(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
		domain.TimeSlot{Date: "2026-03-30", Time: "10:00", InstructorID: 1},
	)
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	_, err := svc.RescheduleSlot(context.Background(), "b1", &models.RescheduleSlotRequest{
		OldSlot: domain.TimeSlot{Date: "2026-03-30", Time: "10:00"},
		NewSlot: domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 2},
	})

	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.Empty(t, repo.updatedSlots, "nothing must be written on conflict")
}

func TestDeleteInRange(t *testing.T) {
	// b1 entirely inside the range, b2 partially, b3 untouched.
	b1 := packageBooking("b1",
		domain.TimeSlot{Date: "2026-04-01", Time: "10:00", InstructorID: 1},
		domain.TimeSlot{Date: "2026-04-03", Time: "10:00", InstructorID: 1},
	)
	b2 := packageBooking("b2",
		domain.TimeSlot{Date: "2026-04-02", Time: "18:30", InstructorID: 1},
		domain.TimeSlot{Date: "2026-04-10", Time: "10:00", InstructorID: 1},
	)
	b3 := packageBooking("b3",
		domain.TimeSlot{Date: "2026-04-10", Time: "18:30", InstructorID: 1},
	)
	repo := newFakeBookingRepo(b1, b2, b3)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := svc.DeleteInRange(context.Background(), &models.DeleteInRangeRequest{
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.DeletedBookings)
	assert.Equal(t, 1, resp.TrimmedBookings)
	assert.Equal(t, []string{"b1"}, repo.deleted)
	require.Len(t, repo.updatedSlots["b2"], 1)
	assert.Equal(t, "2026-04-10", repo.updatedSlots["b2"][0].Date)
	assert.NotContains(t, repo.updatedSlots, "b3")
}

func TestDeleteInRange_InvalidRange(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	_, err := svc.DeleteInRange(context.Background(), &models.DeleteInRangeRequest{
		StartDate: time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestUpdateAttendance(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := svc.UpdateAttendance(context.Background(), "b1", &models.UpdateAttendanceRequest{
		Slot:   domain.TimeSlot{Date: "2026-03-23", Time: "10:00"},
		Status: domain.AttendanceAttended,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceAttended, resp.Attendance["2026-03-23_10:00"])
	assert.Equal(t, domain.AttendanceAttended, repo.attendance["2026-03-23_10:00"])
}

func TestUpdateAttendance_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	_, err := svc.UpdateAttendance(context.Background(), "b1", &models.UpdateAttendanceRequest{
		Slot:   domain.TimeSlot{Date: "2026-03-23", Time: "10:00"},
		Status: "maybe",
	})

	assert.ErrorIs(t, err, ErrInvalidAttendance)
}

func TestUpdateAttendance_SlotNotFound(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	svc := newTestService(newFakeBookingRepo(booking), &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	_, err := svc.UpdateAttendance(context.Background(), "b1", &models.UpdateAttendanceRequest{
		Slot:   domain.TimeSlot{Date: "2026-03-24", Time: "10:00"},
		Status: domain.AttendanceNoShow,
	})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestMarkPaid(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	repo := newFakeBookingRepo(booking)
	notifications := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	svc := newTestService(repo, &fakeSettingsRepo{}, notifications, mailer)

	resp, err := svc.MarkPaid(context.Background(), "b1", &models.MarkPaidRequest{
		Method: domain.PaymentCash,
		Amount: 90,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.PaymentDetails)
	assert.Equal(t, domain.PaymentCash, resp.PaymentDetails.Method)
	assert.Equal(t, testNow, resp.PaymentDetails.ReceivedAt, "receipt time comes from the clock, not the request")

	// Receipt sent and journaled.
	assert.Equal(t, 1, mailer.receipts)
	require.Len(t, notifications.client, 1)
	assert.Equal(t, domain.ClientPaymentReceipt, notifications.client[0].Type)
	assert.Equal(t, "C-ALMA-TEST0001", notifications.client[0].BookingCode)
}

func TestMarkPaid_ReceiptDisabled(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	automation := domain.DefaultAutomationSettings()
	automation.PaymentReceipt.Enabled = false
	mailer := &fakeMailer{}
	svc := newTestService(newFakeBookingRepo(booking), &fakeSettingsRepo{automation: &automation}, &fakeNotificationRepo{}, mailer)

	resp, err := svc.MarkPaid(context.Background(), "b1", &models.MarkPaidRequest{Method: domain.PaymentCard, Amount: 90})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.Zero(t, mailer.receipts)
}

func TestMarkPaid_MailFailureDoesNotFail(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	notifications := &fakeNotificationRepo{}
	svc := newTestService(newFakeBookingRepo(booking), &fakeSettingsRepo{}, notifications, &fakeMailer{err: assert.AnError})

	resp, err := svc.MarkPaid(context.Background(), "b1", &models.MarkPaidRequest{Method: domain.PaymentTransfer, Amount: 90})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.Empty(t, notifications.client, "failed sends are not journaled")
}

func TestMarkUnpaid(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	booking.IsPaid = true
	booking.PaymentDetails = &domain.PaymentDetails{Method: domain.PaymentCash, Amount: 90, ReceivedAt: testNow}
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := svc.MarkUnpaid(context.Background(), "b1")

	require.NoError(t, err)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.PaymentDetails)
}

func TestUpdate(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	svc := newTestService(newFakeBookingRepo(booking), &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	resp, err := svc.Update(context.Background(), "b1", &models.UpdateBookingRequest{
		UserInfo: domain.UserInfo{FirstName: "Carmen", LastName: "Ruiz", Email: "carmen@example.com"},
		Price:    80,
	})

	require.NoError(t, err)
	assert.Equal(t, "Carmen", resp.UserInfo.FirstName)
	assert.Equal(t, float64(80), resp.Price)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	booking := packageBooking("b1",
		domain.TimeSlot{Date: "2026-03-23", Time: "10:00", InstructorID: 1},
	)
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeSettingsRepo{}, &fakeNotificationRepo{}, &fakeMailer{})

	require.NoError(t, svc.Delete(context.Background(), "b1"))
	assert.Equal(t, []string{"b1"}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), "b1"), ErrBookingNotFound)
}

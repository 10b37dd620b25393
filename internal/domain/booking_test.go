package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

func TestHasDuplicateSlots(t *testing.T) {
	tests := []struct {
		name  string
		slots []TimeSlot
		want  bool
	}{
		{
			name: "distinct slots",
			slots: []TimeSlot{
				{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
				{Date: "2026-03-09", Time: "10:00", InstructorID: 1},
			},
			want: false,
		},
		{
			name: "same date and time, different instructor is still a duplicate",
			slots: []TimeSlot{
				{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
				{Date: "2026-03-02", Time: "10:00", InstructorID: 2},
			},
			want: true,
		},
		{
			name: "same date different time",
			slots: []TimeSlot{
				{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
				{Date: "2026-03-02", Time: "18:30", InstructorID: 1},
			},
			want: false,
		},
		{name: "empty", slots: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasDuplicateSlots(tt.slots))
		})
	}
}

func TestExpiryDate(t *testing.T) {
	booking := &Booking{
		ProductType: ProductClassPackage,
		Slots: []TimeSlot{
			{Date: "2026-03-16", Time: "10:00", InstructorID: 1},
			{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
		},
	}

	expiry := booking.ExpiryDate()
	require.NotNil(t, expiry)
	// Anchored to the earliest slot, not to slot order.
	assert.Equal(t, "2026-04-01", expiry.Format(DateFormat))
}

func TestExpiryDate_NotAClassPackage(t *testing.T) {
	booking := &Booking{
		ProductType: ProductIntroClass,
		Slots:       []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}},
	}
	assert.Nil(t, booking.ExpiryDate())
}

func TestExpiryDate_NoSlots(t *testing.T) {
	booking := &Booking{ProductType: ProductClassPackage}
	assert.Nil(t, booking.ExpiryDate())
}

func TestIsExpired(t *testing.T) {
	booking := &Booking{
		ProductType: ProductClassPackage,
		Slots:       []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}},
	}

	// Expiry is 2026-04-01; the window is inclusive of that day.
	assert.False(t, booking.IsExpired(time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, booking.IsExpired(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)))

	slotless := &Booking{ProductType: ProductClassPackage}
	assert.False(t, slotless.IsExpired(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSortSlots(t *testing.T) {
	slots := []TimeSlot{
		{Date: "2026-03-09", Time: "10:00"},
		{Date: "2026-03-02", Time: "18:30"},
		{Date: "2026-03-02", Time: "10:00"},
	}

	SortSlots(slots)

	assert.Equal(t, []TimeSlot{
		{Date: "2026-03-02", Time: "10:00"},
		{Date: "2026-03-02", Time: "18:30"},
		{Date: "2026-03-09", Time: "10:00"},
	}, slots)
}

func TestSlotInRange(t *testing.T) {
	slot := TimeSlot{Date: "2026-03-10", Time: "10:00"}

	start := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	assert.True(t, SlotInRange(slot, start, end), "comparison is date-only")

	assert.True(t, SlotInRange(slot, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, SlotInRange(slot, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestHasSlotAt(t *testing.T) {
	booking := &Booking{Slots: []TimeSlot{
		{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
	}}

	// Instructor is not part of the match: attendance is keyed by date and time.
	assert.True(t, booking.HasSlotAt("2026-03-02", TimeSlot{Time: "10:00", InstructorID: 99}))
	assert.False(t, booking.HasSlotAt("2026-03-02", TimeSlot{Time: "18:30"}))
	assert.False(t, booking.HasSlotAt("2026-03-03", TimeSlot{Time: "10:00"}))
}

func TestSlotKeyAndDateTime(t *testing.T) {
	slot := TimeSlot{Date: "2026-03-02", Time: types.TimeString("18:30"), InstructorID: 1}
	assert.Equal(t, "2026-03-02_18:30", slot.Key())

	dt, err := slot.DateTime()
	require.NoError(t, err)
	assert.Equal(t, 2026, dt.Year())
	assert.Equal(t, time.March, dt.Month())
	assert.Equal(t, 2, dt.Day())
	assert.Equal(t, 18, dt.Hour())
	assert.Equal(t, 30, dt.Minute())
}

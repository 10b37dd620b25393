package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	settings := DefaultCapacityMessages()

	tests := []struct {
		name      string
		count     int
		max       int
		wantLevel CapacityLevel
	}{
		{name: "empty session", count: 0, max: 8, wantLevel: CapacityAvailable},
		{name: "below half", count: 3, max: 8, wantLevel: CapacityAvailable},
		{name: "exactly half", count: 4, max: 8, wantLevel: CapacityFew},
		{name: "above half", count: 5, max: 8, wantLevel: CapacityFew},
		{name: "last spot", count: 7, max: 8, wantLevel: CapacityLast},
		{name: "full", count: 8, max: 8, wantLevel: CapacityLast},
		{name: "zero max counts as empty", count: 5, max: 0, wantLevel: CapacityAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := settings.Classify(tt.count, tt.max)
			require.True(t, ok)
			assert.Equal(t, tt.wantLevel, got.Level)
		})
	}
}

func TestClassify_NoThresholds(t *testing.T) {
	_, ok := CapacityMessageSettings{}.Classify(3, 8)
	assert.False(t, ok)
}

func TestClassify_LowestThresholdIsDefault(t *testing.T) {
	settings := CapacityMessageSettings{
		Thresholds: []CapacityThreshold{
			{Level: CapacityFew, Threshold: 50, Message: "pocos"},
			{Level: CapacityLast, Threshold: 85, Message: "último"},
		},
	}

	got, ok := settings.Classify(0, 8)
	require.True(t, ok)
	assert.Equal(t, CapacityFew, got.Level, "below every threshold the lowest entry wins")
}

func TestCountSessionBookings(t *testing.T) {
	target := TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1}

	bookings := []*Booking{
		// Paid, holds the target session.
		{IsPaid: true, Slots: []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}}},
		// Pending, holds the target session: still counts toward the total.
		{IsPaid: false, Slots: []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}}},
		// Same date and time, different instructor: another session entirely.
		{IsPaid: true, Slots: []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 2}}},
		// Different time.
		{IsPaid: true, Slots: []TimeSlot{{Date: "2026-03-02", Time: "18:30", InstructorID: 1}}},
	}

	occ := CountSessionBookings(bookings, "2026-03-02", target)
	assert.Equal(t, 2, occ.TotalBookingsCount)
	assert.Equal(t, 1, occ.PaidBookingsCount)
}

func TestCountSessionBookings_BookingCountedOncePerSession(t *testing.T) {
	// A booking can never hold duplicate slots, but the counter must still
	// count per booking, not per slot.
	b := &Booking{IsPaid: true, Slots: []TimeSlot{
		{Date: "2026-03-02", Time: "10:00", InstructorID: 1},
		{Date: "2026-03-09", Time: "10:00", InstructorID: 1},
	}}

	occ := CountSessionBookings([]*Booking{b}, "2026-03-02", TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1})
	assert.Equal(t, 1, occ.TotalBookingsCount)
}

func TestEnrichSessionIsFull(t *testing.T) {
	session := Session{Date: "2026-03-02", Time: "10:00", InstructorID: 1, Capacity: 2}

	bookings := []*Booking{
		{IsPaid: true, Slots: []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}}},
		{IsPaid: false, Slots: []TimeSlot{{Date: "2026-03-02", Time: "10:00", InstructorID: 1}}},
	}

	enriched := EnrichSession(session, bookings)
	assert.Equal(t, 2, enriched.TotalBookingsCount)
	assert.Equal(t, 1, enriched.PaidBookingsCount)
	assert.True(t, enriched.IsFull(), "pending bookings hold spots")
}

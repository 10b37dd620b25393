package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ceramicalma/ALMA-BookingService/pkg/ptr"
	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

func testAvailability() WeeklyAvailability {
	return WeeklyAvailability{
		Monday: []AvailableSlot{
			{Time: "10:00", InstructorID: 1},
			{Time: "18:30", InstructorID: 2},
		},
		Wednesday: []AvailableSlot{
			{Time: "10:00", InstructorID: 1},
		},
	}
}

func TestSlotsForDate_WeeklyTemplate(t *testing.T) {
	// 2026-03-02 is a Monday.
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slots, max := SlotsForDate(testAvailability(), nil, ClassCapacity{Max: 10}, date)

	assert.Len(t, slots, 2)
	assert.Equal(t, 10, max)
}

func TestSlotsForDate_DayWithoutTemplate(t *testing.T) {
	// 2026-03-03 is a Tuesday.
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	slots, _ := SlotsForDate(testAvailability(), nil, ClassCapacity{Max: 10}, date)
	assert.Empty(t, slots)
}

func TestSlotsForDate_CancellationOverride(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	overrides := ScheduleOverrides{
		"2026-03-02": {Slots: nil},
	}

	slots, max := SlotsForDate(testAvailability(), overrides, ClassCapacity{Max: 10}, date)
	assert.Empty(t, slots)
	assert.Equal(t, 10, max)
}

func TestSlotsForDate_ReplacementOverrideWithCapacity(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	overrides := ScheduleOverrides{
		"2026-03-02": {
			Slots:    []AvailableSlot{{Time: "12:00", InstructorID: 3}},
			Capacity: ptr.Ptr(4),
		},
	}

	slots, max := SlotsForDate(testAvailability(), overrides, ClassCapacity{Max: 10}, date)
	assert.Equal(t, []AvailableSlot{{Time: types.TimeString("12:00"), InstructorID: 3}}, slots)
	assert.Equal(t, 4, max)
}

func TestSlotsForDate_DefaultCapacityFallback(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, max := SlotsForDate(testAvailability(), nil, ClassCapacity{}, date)
	assert.Equal(t, DefaultClassCapacity, max)
}

func TestDayKeyFor(t *testing.T) {
	assert.Equal(t, Monday, DayKeyFor(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, DayKeyFor(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

package domain

import (
	"time"

	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

// DayKey canonical weekday name used as the key of the weekly availability map.
// Locale-specific display names are a presentation concern and never enter the core.
type DayKey string

const (
	Sunday    DayKey = "Sunday"
	Monday    DayKey = "Monday"
	Tuesday   DayKey = "Tuesday"
	Wednesday DayKey = "Wednesday"
	Thursday  DayKey = "Thursday"
	Friday    DayKey = "Friday"
	Saturday  DayKey = "Saturday"
)

// DayKeys weekday names indexed 0 (Sunday) .. 6 (Saturday).
var DayKeys = [7]DayKey{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayKeyFor maps a calendar date to its canonical weekday key.
func DayKeyFor(date time.Time) DayKey {
	return DayKeys[int(date.Weekday())]
}

// AvailableSlot one entry of the weekly class-package template.
type AvailableSlot struct {
	Time         types.TimeString `json:"time"`
	InstructorID int64            `json:"instructorId"`
}

// WeeklyAvailability the weekly template for class-package scheduling,
// distinct from the per-product scheduling rules of introductory classes.
type WeeklyAvailability map[DayKey][]AvailableSlot

// DailyScheduleOverride date-keyed exception for the weekly template.
// Slots == nil cancels the day; a list replaces the template for that date.
// Capacity, when set, overrides the default class capacity for the date.
type DailyScheduleOverride struct {
	Slots    []AvailableSlot `json:"slots"`
	Capacity *int            `json:"capacity,omitempty"`
}

// IsCancellation reports whether the override closes the whole day.
func (o DailyScheduleOverride) IsCancellation() bool {
	return o.Slots == nil
}

// ScheduleOverrides overrides keyed by date "YYYY-MM-DD".
type ScheduleOverrides map[string]DailyScheduleOverride

// EnrichedAvailableSlot a template slot with live occupancy for one date.
type EnrichedAvailableSlot struct {
	AvailableSlot
	PaidBookingsCount  int `json:"paidBookingsCount"`
	TotalBookingsCount int `json:"totalBookingsCount"`
	MaxCapacity        int `json:"maxCapacity"`
}

// IsFull reports whether new admissions should be refused for the slot.
func (s EnrichedAvailableSlot) IsFull() bool {
	return s.TotalBookingsCount >= s.MaxCapacity
}

// SlotsForDate resolves the effective template slots and capacity for a date:
// the date override wins over the weekly template; a nil-slots override means
// the studio is closed that day.
func SlotsForDate(availability WeeklyAvailability, overrides ScheduleOverrides, capacity ClassCapacity, date time.Time) ([]AvailableSlot, int) {
	max := capacity.Max
	if max <= 0 {
		max = DefaultClassCapacity
	}

	if override, ok := overrides[date.Format(DateFormat)]; ok {
		if override.IsCancellation() {
			return nil, max
		}
		if override.Capacity != nil && *override.Capacity > 0 {
			max = *override.Capacity
		}
		return override.Slots, max
	}

	return availability[DayKeyFor(date)], max
}

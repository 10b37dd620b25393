package domain

import (
	"fmt"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

// TimeSlot represents a booked occurrence: one dated session reserved by a customer.
// Date is a naive calendar date "YYYY-MM-DD"; Time is a naive wall-clock time.
type TimeSlot struct {
	Date         string           `json:"date"`
	Time         types.TimeString `json:"time"`
	InstructorID int64            `json:"instructorId"`
}

// SameDateTime reports whether two slots fall on the same date and time.
// This is the identity used for double-booking conflicts: a customer cannot
// attend two sessions at the same wall-clock moment, whoever teaches them.
func (s TimeSlot) SameDateTime(other TimeSlot) bool {
	return s.Date == other.Date && s.Time == other.Time
}

// SameSession reports whether two slots reference the same session.
// Session identity includes the instructor, matching the scheduling-rule
// structure: capacity is tracked per (date, time, instructor).
func (s TimeSlot) SameSession(other TimeSlot) bool {
	return s.SameDateTime(other) && s.InstructorID == other.InstructorID
}

// Key returns the "date_time" identifier used for attendance records.
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%s_%s", s.Date, s.Time)
}

// DateTime combines date and time into a naive local time.Time.
func (s TimeSlot) DateTime() (time.Time, error) {
	date, err := time.ParseInLocation(DateFormat, s.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot date %q: %w", s.Date, err)
	}
	return s.Time.On(date), nil
}

// Validate checks the slot's date and time formats.
func (s TimeSlot) Validate() error {
	if _, err := time.Parse(DateFormat, s.Date); err != nil {
		return fmt.Errorf("invalid slot date %q", s.Date)
	}
	if err := s.Time.Validate(); err != nil {
		return fmt.Errorf("invalid slot time %q", s.Time)
	}
	return nil
}

// HasDuplicateSlots reports whether the list contains two slots with the
// same (date, time). Bookings must never persist such a pair.
func HasDuplicateSlots(slots []TimeSlot) bool {
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		key := s.Key()
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// SlotInRange reports whether the slot's date falls within [start, end] inclusive.
// The comparison is date-only; start and end are truncated to their calendar day.
func SlotInRange(slot TimeSlot, start, end time.Time) bool {
	date, err := time.Parse(DateFormat, slot.Date)
	if err != nil {
		return false
	}
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !date.Before(startDay) && !date.After(endDay)
}

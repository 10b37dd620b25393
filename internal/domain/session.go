package domain

import (
	"fmt"
	"strings"

	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

// SchedulingRule is a weekly recurrence template entry owned by an
// introductory-class product: "every <weekday> at <time> with <instructor>,
// up to <capacity> students".
type SchedulingRule struct {
	ID           string           `json:"id"`
	DayOfWeek    int              `json:"dayOfWeek"` // 0 (Sunday) .. 6 (Saturday)
	Time         types.TimeString `json:"time"`
	InstructorID int64            `json:"instructorId"`
	Capacity     int              `json:"capacity"`
}

// OverrideSession one session inside a date override.
type OverrideSession struct {
	Time         types.TimeString `json:"time"`
	InstructorID int64            `json:"instructorId"`
	Capacity     int              `json:"capacity"`
}

// SessionOverride is a date-keyed exception to the weekly template.
// Sessions == nil cancels every generated session for the date;
// a non-nil list replaces the generated sessions exactly (no merging).
// At most one override exists per date per product.
type SessionOverride struct {
	Date     string            `json:"date"`
	Sessions []OverrideSession `json:"sessions"`
}

// IsCancellation reports whether the override cancels the whole day.
func (o SessionOverride) IsCancellation() bool {
	return o.Sessions == nil
}

// Session is a concrete, dated occurrence of a class, as opposed to the
// recurring rule that produced it.
type Session struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Time         types.TimeString `json:"time"`
	InstructorID int64            `json:"instructorId"`
	Capacity     int              `json:"capacity"`
	IsOverride   bool             `json:"isOverride"`
}

// EnrichedSession is a session with live occupancy counts. Derived on every
// read from the booking list; never persisted, never cached.
type EnrichedSession struct {
	Session
	PaidBookingsCount  int `json:"paidBookingsCount"`
	TotalBookingsCount int `json:"totalBookingsCount"`
}

// IsFull reports whether admission should treat the session as exhausted.
// Pending bookings hold a spot until staff resolve them, so the total count
// is what gates new admissions.
func (s EnrichedSession) IsFull() bool {
	return s.TotalBookingsCount >= s.Capacity
}

// SessionID builds the deterministic identifier "YYYY-MM-DD-HHMM-instructorId".
// The same logical session always resolves to the same id across
// recomputation; selection state and override comparisons depend on that.
func SessionID(date string, t types.TimeString, instructorID int64) string {
	compact := strings.ReplaceAll(t.String(), ":", "")
	return fmt.Sprintf("%s-%s-%d", date, compact, instructorID)
}

// Slot converts a session into the slot a customer would book.
func (s Session) Slot() TimeSlot {
	return TimeSlot{Date: s.Date, Time: s.Time, InstructorID: s.InstructorID}
}

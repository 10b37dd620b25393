package domain

import "sort"

// ClassCapacity default per-session capacity for class-package slots.
type ClassCapacity struct {
	Max int `json:"max"`
}

// CapacityLevel display severity for occupancy classification.
type CapacityLevel string

const (
	CapacityAvailable CapacityLevel = "available"
	CapacityFew       CapacityLevel = "few"
	CapacityLast      CapacityLevel = "last"
)

// Severity maps the level to an ordering: higher is more urgent.
func (l CapacityLevel) Severity() int {
	switch l {
	case CapacityLast:
		return 2
	case CapacityFew:
		return 1
	default:
		return 0
	}
}

// CapacityThreshold one classification step: active when occupancy percentage
// reaches Threshold.
type CapacityThreshold struct {
	Level     CapacityLevel `json:"level"`
	Threshold int           `json:"threshold"` // percentage 0-100
	Message   string        `json:"message"`
}

// CapacityMessageSettings ordered occupancy thresholds for display.
type CapacityMessageSettings struct {
	Thresholds []CapacityThreshold `json:"thresholds"`
}

// DefaultCapacityMessages returns the studio's default display thresholds,
// used when no setting is stored.
func DefaultCapacityMessages() CapacityMessageSettings {
	return CapacityMessageSettings{
		Thresholds: []CapacityThreshold{
			{Level: CapacityAvailable, Threshold: 0, Message: "Espacios disponibles"},
			{Level: CapacityFew, Threshold: 50, Message: "Quedan pocos cupos"},
			{Level: CapacityLast, Threshold: 85, Message: "¡Último cupo!"},
		},
	}
}

// Classify resolves the active threshold for an occupancy of count out of max.
// Thresholds are evaluated by descending percentage: the first one whose value
// is <= the occupancy percentage wins; when none qualify the lowest entry is
// the default. max == 0 counts as 0% occupancy. The second return is false
// only when no thresholds are configured at all.
func (s CapacityMessageSettings) Classify(count, max int) (CapacityThreshold, bool) {
	if len(s.Thresholds) == 0 {
		return CapacityThreshold{}, false
	}

	percentage := 0.0
	if max > 0 {
		percentage = float64(count) / float64(max) * 100
	}

	sorted := make([]CapacityThreshold, len(s.Thresholds))
	copy(sorted, s.Thresholds)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	for _, t := range sorted {
		if percentage >= float64(t.Threshold) {
			return t, true
		}
	}
	return sorted[len(sorted)-1], true
}

// SessionOccupancy live occupancy counts for one session.
type SessionOccupancy struct {
	PaidBookingsCount  int
	TotalBookingsCount int
}

// CountSessionBookings recomputes occupancy for the session identified by
// (date, time, instructor) from the live booking list. Total counts every
// matching booking; paid counts only those already marked paid. There is no
// stored counter anywhere: flipping a booking's isPaid flag changes the next
// resolver output with no recount step.
func CountSessionBookings(bookings []*Booking, date string, t TimeSlot) SessionOccupancy {
	var occ SessionOccupancy
	target := TimeSlot{Date: date, Time: t.Time, InstructorID: t.InstructorID}

	for _, b := range bookings {
		for _, s := range b.Slots {
			if !s.SameSession(target) {
				continue
			}
			occ.TotalBookingsCount++
			if b.IsPaid {
				occ.PaidBookingsCount++
			}
			break
		}
	}
	return occ
}

// EnrichSession attaches live occupancy to a generated session.
func EnrichSession(session Session, bookings []*Booking) EnrichedSession {
	occ := CountSessionBookings(bookings, session.Date, session.Slot())
	return EnrichedSession{
		Session:            session,
		PaidBookingsCount:  occ.PaidBookingsCount,
		TotalBookingsCount: occ.TotalBookingsCount,
	}
}

package domain

import "time"

// GenerateSessions expands the weekly scheduling rules into concrete sessions
// for every date in [from, from+days), applying date overrides.
//
// Precedence per date:
//  1. An override with nil sessions cancels the day entirely, whatever the
//     weekday template says.
//  2. An override with a session list replaces the generated sessions for
//     that date exactly; the list is honored as-is, never merged with or
//     reconciled against the template.
//  3. Without an override, one session is emitted per rule whose DayOfWeek
//     matches; a weekday with several rules yields several sessions.
//
// The result is in chronological order. Filtering of past or full sessions
// is the caller's concern.
func GenerateSessions(rules []SchedulingRule, overrides []SessionOverride, from time.Time, days int) []Session {
	byDate := make(map[string]SessionOverride, len(overrides))
	for _, o := range overrides {
		byDate[o.Date] = o
	}

	sessions := make([]Session, 0)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	for i := 0; i < days; i++ {
		date := day.AddDate(0, 0, i)
		dateStr := date.Format(DateFormat)

		if override, ok := byDate[dateStr]; ok {
			if override.IsCancellation() {
				continue
			}
			for _, s := range override.Sessions {
				sessions = append(sessions, Session{
					ID:           SessionID(dateStr, s.Time, s.InstructorID),
					Date:         dateStr,
					Time:         s.Time,
					InstructorID: s.InstructorID,
					Capacity:     s.Capacity,
					IsOverride:   true,
				})
			}
			continue
		}

		weekday := int(date.Weekday())
		for _, rule := range rules {
			if rule.DayOfWeek != weekday {
				continue
			}
			sessions = append(sessions, Session{
				ID:           SessionID(dateStr, rule.Time, rule.InstructorID),
				Date:         dateStr,
				Time:         rule.Time,
				InstructorID: rule.InstructorID,
				Capacity:     rule.Capacity,
			})
		}
	}

	return sessions
}

// SessionsForDate generates the sessions a product would hold on a single date.
func SessionsForDate(rules []SchedulingRule, overrides []SessionOverride, date time.Time) []Session {
	return GenerateSessions(rules, overrides, date, 1)
}

// SessionCapacityFor resolves the capacity of the session a slot points at.
// Returns false when no generated session matches the slot: the slot refers
// to a session that does not exist on the schedule.
func SessionCapacityFor(rules []SchedulingRule, overrides []SessionOverride, slot TimeSlot) (int, bool) {
	date, err := time.Parse(DateFormat, slot.Date)
	if err != nil {
		return 0, false
	}
	for _, s := range SessionsForDate(rules, overrides, date) {
		if s.Time == slot.Time && s.InstructorID == slot.InstructorID {
			return s.Capacity, true
		}
	}
	return 0, false
}

// OverrideMatchesGenerated reports whether a candidate override list is
// identical, as a set over (time, instructor, capacity), to the sessions the
// template would generate anyway. Saving such an override would be redundant.
func OverrideMatchesGenerated(generated []Session, candidate []OverrideSession) bool {
	if candidate == nil || len(candidate) != len(generated) {
		return false
	}
	for _, c := range candidate {
		found := false
		for _, g := range generated {
			if g.Time == c.Time && g.InstructorID == c.InstructorID && g.Capacity == c.Capacity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeString represents a wall-clock time of day stored as "HH:MM" (24h).
// Dates and times in the system are timezone-naive local values, so the
// canonical form is a plain string rather than time.Time.
type TimeString string

const canonicalLayout = "15:04"

// Layouts accepted by NewTimeStringFromString, tried in order.
var acceptedLayouts = []string{
	"15:04",
	"3:04 PM",
	"03:04 PM",
	"3:04PM",
}

var errInvalidFormat = errors.New("invalid time string format")

// NewTimeString creates a TimeString from a time.Time, keeping only the
// wall-clock component.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(canonicalLayout))
}

// NewTimeStringFromString parses a time of day in 24h ("15:04") or
// 12h ("3:04 PM") form and returns it in canonical 24h form.
func NewTimeStringFromString(s string) (TimeString, error) {
	trimmed := strings.TrimSpace(strings.ToUpper(s))
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", errInvalidFormat, s)
}

// String returns the canonical "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero reports whether the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value is a well-formed canonical time.
func (ts TimeString) Validate() error {
	if _, err := time.Parse(canonicalLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", errInvalidFormat, string(ts))
	}
	return nil
}

// Minutes returns the number of minutes since midnight.
// Invalid values count as 0.
func (ts TimeString) Minutes() int {
	t, err := time.Parse(canonicalLayout, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsBefore reports whether ts is strictly earlier in the day than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter reports whether ts is strictly later in the day than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Crossing midnight is an error: the scheduling model never spans days.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := ts.Validate(); err != nil {
		return "", err
	}
	total := ts.Minutes() + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("time %s %+d minutes leaves the day", ts, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Format12 returns the 12-hour display form, e.g. "10:00 AM".
// Used by presentation layers only; storage and comparisons stay canonical.
func (ts TimeString) Format12() string {
	t, err := time.Parse(canonicalLayout, string(ts))
	if err != nil {
		return string(ts)
	}
	return t.Format("03:04 PM")
}

// On combines the time of day with a calendar date into a naive time.Time
// in the date's location.
func (ts TimeString) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		ts.Minutes()/60, ts.Minutes()%60, 0, 0, date.Location())
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

// 2026-03-02 is a Monday.
var testFrom = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func testRules() []SchedulingRule {
	return []SchedulingRule{
		{ID: "r1", DayOfWeek: 1, Time: "10:00", InstructorID: 1, Capacity: 6},
		{ID: "r2", DayOfWeek: 1, Time: "18:30", InstructorID: 2, Capacity: 6},
		{ID: "r3", DayOfWeek: 3, Time: "10:00", InstructorID: 1, Capacity: 8},
	}
}

func TestGenerateSessions_WeeklyTemplate(t *testing.T) {
	sessions := GenerateSessions(testRules(), nil, testFrom, 7)

	// Monday has two rules, Wednesday one.
	require.Len(t, sessions, 3)
	assert.Equal(t, "2026-03-02", sessions[0].Date)
	assert.Equal(t, "2026-03-02", sessions[1].Date)
	assert.Equal(t, "2026-03-04", sessions[2].Date)
	assert.Equal(t, "2026-03-02-1000-1", sessions[0].ID)
	assert.False(t, sessions[0].IsOverride)
}

func TestGenerateSessions_CancellationOverride(t *testing.T) {
	overrides := []SessionOverride{
		{Date: "2026-03-02", Sessions: nil},
	}

	sessions := GenerateSessions(testRules(), overrides, testFrom, 7)

	require.Len(t, sessions, 1)
	assert.Equal(t, "2026-03-04", sessions[0].Date)
}

func TestGenerateSessions_ReplacementOverride(t *testing.T) {
	overrides := []SessionOverride{
		{Date: "2026-03-02", Sessions: []OverrideSession{
			{Time: "12:00", InstructorID: 3, Capacity: 4},
		}},
	}

	sessions := GenerateSessions(testRules(), overrides, testFrom, 7)

	// The override list replaces both Monday rules, no merging.
	require.Len(t, sessions, 2)
	assert.Equal(t, "2026-03-02", sessions[0].Date)
	assert.Equal(t, types.TimeString("12:00"), sessions[0].Time)
	assert.Equal(t, int64(3), sessions[0].InstructorID)
	assert.Equal(t, 4, sessions[0].Capacity)
	assert.True(t, sessions[0].IsOverride)
	assert.Equal(t, "2026-03-04", sessions[1].Date)
}

func TestGenerateSessions_EmptyListOverrideIsNotCancellation(t *testing.T) {
	overrides := []SessionOverride{
		{Date: "2026-03-02", Sessions: []OverrideSession{}},
	}

	sessions := GenerateSessions(testRules(), overrides, testFrom, 1)

	// Empty non-nil list replaces the day with zero sessions.
	assert.Empty(t, sessions)
	assert.False(t, overrides[0].IsCancellation())
}

func TestGenerateSessions_Horizon(t *testing.T) {
	sessions := GenerateSessions(testRules(), nil, testFrom, 14)
	require.Len(t, sessions, 6)

	last := sessions[len(sessions)-1]
	assert.Equal(t, "2026-03-11", last.Date)
}

func TestSessionCapacityFor(t *testing.T) {
	rules := testRules()

	capacity, ok := SessionCapacityFor(rules, nil, TimeSlot{Date: "2026-03-02", Time: "18:30", InstructorID: 2})
	require.True(t, ok)
	assert.Equal(t, 6, capacity)

	// Slot pointing at a session the template never generates.
	_, ok = SessionCapacityFor(rules, nil, TimeSlot{Date: "2026-03-03", Time: "10:00", InstructorID: 1})
	assert.False(t, ok)

	// Override takes precedence over the rule for its date.
	overrides := []SessionOverride{
		{Date: "2026-03-02", Sessions: []OverrideSession{
			{Time: "10:00", InstructorID: 1, Capacity: 3},
		}},
	}
	capacity, ok = SessionCapacityFor(rules, overrides, TimeSlot{Date: "2026-03-02", Time: "10:00", InstructorID: 1})
	require.True(t, ok)
	assert.Equal(t, 3, capacity)

	_, ok = SessionCapacityFor(rules, overrides, TimeSlot{Date: "2026-03-02", Time: "18:30", InstructorID: 2})
	assert.False(t, ok, "session dropped by the override must not admit")
}

func TestOverrideMatchesGenerated(t *testing.T) {
	generated := []Session{
		{Time: "10:00", InstructorID: 1, Capacity: 6},
		{Time: "18:30", InstructorID: 2, Capacity: 6},
	}

	tests := []struct {
		name      string
		candidate []OverrideSession
		want      bool
	}{
		{
			name: "identical set, different order",
			candidate: []OverrideSession{
				{Time: "18:30", InstructorID: 2, Capacity: 6},
				{Time: "10:00", InstructorID: 1, Capacity: 6},
			},
			want: true,
		},
		{
			name: "different capacity",
			candidate: []OverrideSession{
				{Time: "10:00", InstructorID: 1, Capacity: 6},
				{Time: "18:30", InstructorID: 2, Capacity: 4},
			},
			want: false,
		},
		{
			name: "missing session",
			candidate: []OverrideSession{
				{Time: "10:00", InstructorID: 1, Capacity: 6},
			},
			want: false,
		},
		{name: "nil is a cancellation, never redundant", candidate: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverrideMatchesGenerated(generated, tt.candidate))
		})
	}
}

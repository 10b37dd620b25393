package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical 24h", input: "10:00", want: "10:00"},
		{name: "afternoon 24h", input: "18:30", want: "18:30"},
		{name: "12h with space", input: "10:00 AM", want: "10:00"},
		{name: "12h afternoon", input: "6:30 PM", want: "18:30"},
		{name: "12h lowercase", input: "6:30 pm", want: "18:30"},
		{name: "12h no space", input: "6:30PM", want: "18:30"},
		{name: "12h padded hour", input: "06:30 PM", want: "18:30"},
		{name: "midnight 12h", input: "12:00 AM", want: "00:00"},
		{name: "noon 12h", input: "12:00 PM", want: "12:00"},
		{name: "garbage", input: "not-a-time", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("10:00"))
	assert.Equal(t, 630, TimeString("10:30").Minutes())
}

func TestTimeStringAddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err, "crossing midnight must fail")

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestTimeStringFormat12(t *testing.T) {
	assert.Equal(t, "10:00 AM", TimeString("10:00").Format12())
	assert.Equal(t, "06:30 PM", TimeString("18:30").Format12())
	assert.Equal(t, "12:00 AM", TimeString("00:00").Format12())
}

func TestTimeStringOn(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	got := TimeString("18:30").On(date)
	assert.Equal(t, time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC), got)
}

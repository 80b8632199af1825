package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleWeekday(t *testing.T) {
	SetLocation(time.UTC)
	defer SetLocation(nil)

	tests := []struct {
		date    string
		want    int
		weekday bool
	}{
		{"2026-01-19", 0, true}, // Monday
		{"2026-01-20", 1, true},
		{"2026-01-21", 2, true},
		{"2026-01-22", 3, true},
		{"2026-01-23", 4, true}, // Friday
		{"2026-01-24", 0, false},
		{"2026-01-25", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			require.NoError(t, err)

			got, ok := ScheduleWeekday(d)
			assert.Equal(t, tt.weekday, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.weekday, IsWeekday(d))
			assert.Equal(t, !tt.weekday, IsWeekend(d))
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	SetLocation(time.UTC)
	defer SetLocation(nil)

	for _, s := range []string{"2026-01-19", "2024-02-29", "1999-12-31", "2026-10-18"} {
		d, err := ParseDate(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatDate(d))
		assert.Equal(t, 0, d.Hour())
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, s := range []string{"", "2026-1-19", "2026-02-30", "19/01/2026", "2026-01-19T00:00:00Z", "2025-02-29"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestNextAndPreviousDay(t *testing.T) {
	SetLocation(time.UTC)
	defer SetLocation(nil)

	d := time.Date(2026, time.December, 31, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2027-01-01", FormatDate(NextDay(d)))
	assert.Equal(t, "2026-12-30", FormatDate(PreviousDay(d)))
	assert.Equal(t, 0, NextDay(d).Hour())
}

func TestNextDay_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	SetLocation(ny)
	defer SetLocation(nil)

	// Clocks move forward on 2026-03-08.
	d := Date(2026, time.March, 8)
	assert.Equal(t, "2026-03-09", FormatDate(NextDay(d)))
	assert.Equal(t, "2026-03-07", FormatDate(PreviousDay(d)))
}

func TestStartOfDay(t *testing.T) {
	SetLocation(time.UTC)
	defer SetLocation(nil)

	d := time.Date(2026, time.January, 19, 23, 59, 59, 0, time.UTC)
	start := StartOfDay(d)

	assert.Equal(t, time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, IsSameDay(d, start))
}

func TestFormatHelpers(t *testing.T) {
	SetLocation(time.UTC)
	defer SetLocation(nil)

	d := Date(2026, time.January, 19)

	assert.Equal(t, "19/01/2026", FormatShort(d))
	assert.Equal(t, "Lunes", WeekdayNameEs(d))
	assert.Equal(t, "Domingo", WeekdayNameEs(d.AddDate(0, 0, 6)))
	assert.Equal(t, "Lunes 19/01/2026", FormatWithWeekday(d))
	assert.Equal(t, "Lunes 19/01", FormatNavbar(d))
}

func TestLoadLocation(t *testing.T) {
	defer SetLocation(nil)

	require.NoError(t, LoadLocation(""))
	assert.Equal(t, time.Local, Location())

	require.NoError(t, LoadLocation("UTC"))
	assert.Equal(t, "UTC", Location().String())

	assert.Error(t, LoadLocation("Not/AZone"))
}

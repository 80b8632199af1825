package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

func TestWeekdayOf(t *testing.T) {
	monday := time.Date(2026, time.January, 19, 10, 0, 0, 0, time.Local)
	saturday := time.Date(2026, time.January, 24, 10, 0, 0, 0, time.Local)

	w, ok := WeekdayOf(monday)
	require.True(t, ok)
	assert.Equal(t, Monday, w)
	assert.Equal(t, "Lunes", w.Label())

	w, ok = WeekdayOf(monday.AddDate(0, 0, 4))
	require.True(t, ok)
	assert.Equal(t, Friday, w)

	_, ok = WeekdayOf(saturday)
	assert.False(t, ok)
}

func TestWeekday_Valid(t *testing.T) {
	for _, w := range Weekdays {
		assert.True(t, w.Valid())
		assert.NotEmpty(t, w.Label())
	}
	assert.False(t, Weekday(5).Valid())
	assert.False(t, Weekday(-1).Valid())
	assert.Empty(t, Weekday(7).Label())
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		ok    bool
	}{
		{"valid", Entry{ID: "e1", ClassID: "k1", Weekday: Tuesday, Hour: "08:30"}, true},
		{"bad hour", Entry{ID: "e1", ClassID: "k1", Weekday: Tuesday, Hour: "8:30"}, false},
		{"hour out of range", Entry{ID: "e1", ClassID: "k1", Weekday: Tuesday, Hour: "24:00"}, false},
		{"weekend", Entry{ID: "e1", ClassID: "k1", Weekday: 5, Hour: "08:00"}, false},
		{"no class", Entry{ID: "e1", Weekday: Monday, Hour: "08:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, shared.IsValidation(err), "got %v", err)
			}
		})
	}
}

func TestSchedule_Validate_Dives(t *testing.T) {
	s := New("s1", 2026)
	s.AddEntry(Entry{ID: "e1", ClassID: "k1", Weekday: Monday, Hour: "9"})

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries[0].hour")
}

func TestSchedule_RemoveEntry(t *testing.T) {
	s := New("s1", 2026)
	s.AddEntry(Entry{ID: "e1", ClassID: "k1", Weekday: Monday, Hour: "08:00"})
	s.AddEntry(Entry{ID: "e2", ClassID: "k2", Weekday: Monday, Hour: "09:00"})

	assert.True(t, s.RemoveEntry("e1"))
	assert.False(t, s.RemoveEntry("e1"))
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "e2", s.Entries[0].ID)
}

func TestSchedule_RemoveClasses(t *testing.T) {
	s := New("s1", 2026)
	s.AddEntry(Entry{ID: "e1", ClassID: "k1", Weekday: Monday, Hour: "08:00"})
	s.AddEntry(Entry{ID: "e2", ClassID: "k2", Weekday: Monday, Hour: "09:00"})
	s.AddEntry(Entry{ID: "e3", ClassID: "k1", Weekday: Friday, Hour: "10:00"})

	assert.Equal(t, 2, s.RemoveClasses("k1", "missing"))
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "k2", s.Entries[0].ClassID)
}

func TestClassesForWeekday(t *testing.T) {
	classes := []roster.Class{
		{ID: "k1", CourseID: "c1", Name: "Lengua"},
		{ID: "k2", CourseID: "c1", Name: "Matemáticas"},
		{ID: "k3", CourseID: "c1", Name: "Historia"},
	}

	s := New("s1", 2026)
	s.AddEntry(Entry{ID: "e1", ClassID: "k1", Weekday: Monday, Hour: "10:00"})
	s.AddEntry(Entry{ID: "e2", ClassID: "k2", Weekday: Monday, Hour: "08:00"})
	s.AddEntry(Entry{ID: "e3", ClassID: "k2", Weekday: Monday, Hour: "11:00"})
	s.AddEntry(Entry{ID: "e4", ClassID: "ghost", Weekday: Monday, Hour: "07:00"})
	s.AddEntry(Entry{ID: "e5", ClassID: "k3", Weekday: Tuesday, Hour: "07:00"})

	got := ClassesForWeekday(&s, Monday, classes)
	require.Len(t, got, 2)
	assert.Equal(t, "k2", got[0].ID)
	assert.Equal(t, "k1", got[1].ID)

	assert.Empty(t, ClassesForWeekday(&s, Wednesday, classes))
	assert.Empty(t, ClassesForWeekday(nil, Monday, classes))
}

func TestEntriesFor_StableOnTies(t *testing.T) {
	s := New("s1", 2026)
	s.AddEntry(Entry{ID: "e1", ClassID: "k1", Weekday: Monday, Hour: "08:00"})
	s.AddEntry(Entry{ID: "e2", ClassID: "k2", Weekday: Monday, Hour: "08:00"})
	s.AddEntry(Entry{ID: "e3", ClassID: "k3", Weekday: Monday, Hour: "07:45"})

	got := s.EntriesFor(Monday)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"e3", "e1", "e2"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

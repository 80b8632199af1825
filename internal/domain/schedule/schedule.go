// Package schedule models the yearly weekly timetable: which class is taught
// on which school weekday and at what hour.
package schedule

import (
	"sort"
	"time"

	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

// Weekday is a school day, Monday=0 through Friday=4.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the school week in order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid reports whether w is a school weekday.
func (w Weekday) Valid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	default:
		return false
	}
}

// Label returns the Spanish name of the weekday.
func (w Weekday) Label() string {
	switch w {
	case Monday:
		return "Lunes"
	case Tuesday:
		return "Martes"
	case Wednesday:
		return "Miércoles"
	case Thursday:
		return "Jueves"
	case Friday:
		return "Viernes"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (w Weekday) String() string {
	return w.Label()
}

// WeekdayOf returns the school weekday of t, or false on weekends.
func WeekdayOf(t time.Time) (Weekday, bool) {
	d, ok := timeutil.ScheduleWeekday(t)
	if !ok {
		return 0, false
	}
	return Weekday(d), true
}

// Entry places a class on a weekday at a zero-padded "HH:MM" hour.
// Overlapping and duplicate entries are allowed.
type Entry struct {
	ID      string  `json:"id" validate:"required"`
	ClassID string  `json:"classId" validate:"required"`
	Weekday Weekday `json:"weekday" validate:"enum"`
	Hour    string  `json:"hour" validate:"hhmm"`
}

// Validate checks the entry.
func (e Entry) Validate() error {
	return shared.Validate("schedule entry", e)
}

// Schedule is the timetable of one calendar year.
type Schedule struct {
	ID      string  `json:"id" validate:"required"`
	Year    int     `json:"year" validate:"gte=1900,lte=9999"`
	Entries []Entry `json:"entries" validate:"dive"`
}

// Validate checks the schedule and all of its entries.
func (s Schedule) Validate() error {
	return shared.Validate("schedule", s)
}

// New returns an empty schedule for year.
func New(id string, year int) Schedule {
	return Schedule{ID: id, Year: year, Entries: []Entry{}}
}

// AddEntry appends an entry to the schedule.
func (s *Schedule) AddEntry(e Entry) {
	s.Entries = append(s.Entries, e)
}

// RemoveEntry drops the entry with the given id and reports whether it existed.
func (s *Schedule) RemoveEntry(id string) bool {
	return s.removeWhere(func(e Entry) bool { return e.ID == id }) > 0
}

// RemoveClasses drops every entry of the given classes and returns how many
// entries were removed.
func (s *Schedule) RemoveClasses(classIDs ...string) int {
	ids := make(map[string]struct{}, len(classIDs))
	for _, id := range classIDs {
		ids[id] = struct{}{}
	}
	return s.removeWhere(func(e Entry) bool {
		_, ok := ids[e.ClassID]
		return ok
	})
}

func (s *Schedule) removeWhere(match func(Entry) bool) int {
	kept := s.Entries[:0]
	removed := 0
	for _, e := range s.Entries {
		if match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.Entries = kept
	return removed
}

// EntriesFor returns the entries of weekday sorted by hour. Entries sharing
// an hour keep their insertion order.
func (s Schedule) EntriesFor(w Weekday) []Entry {
	out := make([]Entry, 0)
	for _, e := range s.Entries {
		if e.Weekday == w {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// ClassesForWeekday resolves the classes taught on weekday, ordered by their
// earliest hour. A class scheduled twice appears once. Entries whose class is
// missing from classes are skipped.
func ClassesForWeekday(s *Schedule, w Weekday, classes []roster.Class) []roster.Class {
	if s == nil {
		return []roster.Class{}
	}

	byID := make(map[string]roster.Class, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
	}

	out := make([]roster.Class, 0)
	seen := make(map[string]struct{})
	for _, e := range s.EntriesFor(w) {
		if _, dup := seen[e.ClassID]; dup {
			continue
		}
		seen[e.ClassID] = struct{}{}
		if c, ok := byID[e.ClassID]; ok {
			out = append(out, c)
		}
	}
	return out
}

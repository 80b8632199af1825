// Package timeutil provides calendar helpers for the school week.
// All functions operate in a configurable location (time.Local by default)
// so that "today" and weekday resolution follow the teacher's wall clock.
package timeutil

import (
	"fmt"
	"sync"
	"time"
)

var (
	locMu sync.RWMutex
	loc   = time.Local
)

// SetLocation changes the location used by every helper in this package.
// A nil location resets it to time.Local.
func SetLocation(l *time.Location) {
	if l == nil {
		l = time.Local
	}
	locMu.Lock()
	loc = l
	locMu.Unlock()
}

// LoadLocation resolves an IANA zone name and makes it the package location.
// An empty name or "Local" keeps time.Local.
func LoadLocation(name string) error {
	if name == "" || name == "Local" {
		SetLocation(time.Local)
		return nil
	}
	l, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load location %q: %w", name, err)
	}
	SetLocation(l)
	return nil
}

// Location returns the location currently in use.
func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return loc
}

// Now returns the current time in the package location.
func Now() time.Time {
	return time.Now().In(Location())
}

// In converts a time to the package location.
func In(t time.Time) time.Time {
	return t.In(Location())
}

// Date creates a time at midnight of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Location())
}

// StartOfDay returns the start of the day (00:00:00) of t.
func StartOfDay(t time.Time) time.Time {
	l := In(t)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Location())
}

// Today returns the start of the current day.
func Today() time.Time {
	return StartOfDay(Now())
}

// CurrentYear returns the calendar year of the current day.
func CurrentYear() int {
	return Now().Year()
}

// NextDay returns the start of the calendar day after t.
// AddDate keeps DST transitions from skipping or repeating a day.
func NextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// PreviousDay returns the start of the calendar day before t.
func PreviousDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -1)
}

// ScheduleWeekday maps t onto the school week: Monday is 0 and Friday is 4.
// The boolean is false on Saturday and Sunday.
func ScheduleWeekday(t time.Time) (int, bool) {
	switch In(t).Weekday() {
	case time.Monday:
		return 0, true
	case time.Tuesday:
		return 1, true
	case time.Wednesday:
		return 2, true
	case time.Thursday:
		return 3, true
	case time.Friday:
		return 4, true
	default:
		return 0, false
	}
}

// IsWeekday checks if t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	_, ok := ScheduleWeekday(t)
	return ok
}

// IsWeekend checks if the given time is on a weekend.
func IsWeekend(t time.Time) bool {
	return !IsWeekday(t)
}

// IsSameDay checks if two times are on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	a1, a2 := In(t1), In(t2)
	return a1.Year() == a2.Year() && a1.YearDay() == a2.YearDay()
}

// Common date/time formats.
const (
	// LayoutDate is the ISO calendar date used as storage key (YYYY-MM-DD).
	LayoutDate = "2006-01-02"
	// LayoutShort is the day-first format shown to the teacher (DD/MM/YYYY).
	LayoutShort = "02/01/2006"
	// LayoutHour is the schedule slot format (HH:MM).
	LayoutHour = "15:04"
)

// FormatDate formats t as a "YYYY-MM-DD" string in the package location.
func FormatDate(t time.Time) string {
	return In(t).Format(LayoutDate)
}

// ParseDate parses a "YYYY-MM-DD" string into midnight of that day.
// Only canonical zero-padded dates are accepted so that
// FormatDate(ParseDate(s)) == s for every accepted s.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutDate, value, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	if t.Format(LayoutDate) != value {
		return time.Time{}, fmt.Errorf("parse date %q: not a canonical date", value)
	}
	return t, nil
}

// FormatShort formats t as "DD/MM/YYYY".
func FormatShort(t time.Time) string {
	return In(t).Format(LayoutShort)
}

// WeekdayNameEs returns the Spanish name for the weekday of t.
func WeekdayNameEs(t time.Time) string {
	switch In(t).Weekday() {
	case time.Monday:
		return "Lunes"
	case time.Tuesday:
		return "Martes"
	case time.Wednesday:
		return "Miércoles"
	case time.Thursday:
		return "Jueves"
	case time.Friday:
		return "Viernes"
	case time.Saturday:
		return "Sábado"
	case time.Sunday:
		return "Domingo"
	default:
		return ""
	}
}

// FormatWithWeekday formats t as "Lunes 19/01/2026".
func FormatWithWeekday(t time.Time) string {
	return WeekdayNameEs(t) + " " + FormatShort(t)
}

// FormatNavbar formats t as "Lunes 19/01" for compact headers.
func FormatNavbar(t time.Time) string {
	return WeekdayNameEs(t) + " " + In(t).Format("02/01")
}

package tracker

import (
	"time"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

// DayState is what the attendance screen shows for a date.
type DayState string

const (
	DayWeekend   DayState = "weekend"
	DayClosed    DayState = "closed"
	DayNoClasses DayState = "no_classes"
	DayOpen      DayState = "open"
)

// ScheduledClass is one class of the day and whether it has been taken.
type ScheduledClass struct {
	roster.ClassWithCourse
	HasAttendance bool `json:"hasAttendance"`
}

// DayOverview summarises one date.
type DayOverview struct {
	Date    string                `json:"date"`
	Weekday *schedule.Weekday     `json:"weekday,omitempty"`
	Record  *attendance.DayRecord `json:"record,omitempty"`
	Classes []ScheduledClass      `json:"classes"`
	Pending int                   `json:"pending"`
	State   DayState              `json:"state"`
}

// DayOverview builds the overview of date from the current-year schedule.
// The state is the first that applies of weekend, closed, no classes, open.
// A class whose course is gone still counts as scheduled, so the day stays
// open and can be finished even though Classes omits it.
func (t *Tracker) DayOverview(date time.Time) DayOverview {
	iso := timeutil.FormatDate(date)
	out := DayOverview{
		Date:    iso,
		Record:  t.GetDayRecord(iso),
		Classes: []ScheduledClass{},
	}

	w, ok := schedule.WeekdayOf(date)
	if !ok {
		out.State = DayWeekend
		return out
	}
	out.Weekday = &w

	taken := make(map[string]bool)
	for _, r := range t.view.AttendanceRecords() {
		if r.Date == iso {
			taken[r.ClassID] = true
		}
	}

	scheduled := t.ClassesForWeekday(w)
	for _, c := range withCourses(scheduled, t.view.Courses()) {
		sc := ScheduledClass{ClassWithCourse: c, HasAttendance: taken[c.ID]}
		if !sc.HasAttendance {
			out.Pending++
		}
		out.Classes = append(out.Classes, sc)
	}

	switch {
	case out.Record != nil && out.Record.Status.Closed():
		out.State = DayClosed
	case len(scheduled) == 0:
		out.State = DayNoClasses
	default:
		out.State = DayOpen
	}
	return out
}

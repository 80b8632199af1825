package tracker

import (
	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
)

// Read accessors answer from the in-memory view and never touch the store.
// Returned values are copies.

// Teacher returns the teacher profile, or nil before setup.
func (t *Tracker) Teacher() *roster.TeacherProfile { return t.view.Teacher() }

func (t *Tracker) Courses() []roster.Course { return t.view.Courses() }

func (t *Tracker) Classes() []roster.Class { return t.view.Classes() }

func (t *Tracker) Students() []roster.Student { return t.view.Students() }

func (t *Tracker) AttendanceRecords() []attendance.Record { return t.view.AttendanceRecords() }

func (t *Tracker) DayRecords() []attendance.DayRecord { return t.view.DayRecords() }

// Schedule returns the current-year schedule, or nil when none was created.
func (t *Tracker) Schedule() *schedule.Schedule {
	return t.view.ScheduleForYear(t.currentYear())
}

// ScheduleForYear returns the schedule of year, or nil.
func (t *Tracker) ScheduleForYear(year int) *schedule.Schedule {
	return t.view.ScheduleForYear(year)
}

// ClassesForWeekday returns the classes scheduled on w this year, ordered by
// their earliest hour. Entries pointing at deleted classes are skipped.
func (t *Tracker) ClassesForWeekday(w schedule.Weekday) []roster.Class {
	return schedule.ClassesForWeekday(t.Schedule(), w, t.view.Classes())
}

// GetAttendanceForClass returns the record of classID on date, or nil.
func (t *Tracker) GetAttendanceForClass(classID, date string) *attendance.Record {
	key := attendance.RecordKey{ClassID: classID, Date: date}
	for _, r := range t.view.AttendanceRecords() {
		if r.Key() == key {
			return &r
		}
	}
	return nil
}

// GetDayRecord returns the closing of date, or nil while the day is pending.
func (t *Tracker) GetDayRecord(date string) *attendance.DayRecord {
	for _, d := range t.view.DayRecords() {
		if d.Date == date {
			return &d
		}
	}
	return nil
}

// GetStudentsByCourse returns the students of courseID.
func (t *Tracker) GetStudentsByCourse(courseID string) []roster.Student {
	out := make([]roster.Student, 0)
	for _, s := range t.view.Students() {
		if s.CourseID == courseID {
			out = append(out, s)
		}
	}
	return out
}

// GetCourseByID returns the course, or nil.
func (t *Tracker) GetCourseByID(id string) *roster.Course {
	for _, c := range t.view.Courses() {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// GetClassByID returns the class, or nil.
func (t *Tracker) GetClassByID(id string) *roster.Class {
	for _, c := range t.view.Classes() {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// VisibleClasses returns the classes whose course exists, paired with it.
func (t *Tracker) VisibleClasses() []roster.ClassWithCourse {
	return withCourses(t.view.Classes(), t.view.Courses())
}

func withCourses(classes []roster.Class, courses []roster.Course) []roster.ClassWithCourse {
	byID := make(map[string]roster.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	out := make([]roster.ClassWithCourse, 0, len(classes))
	for _, cls := range classes {
		course, ok := byID[cls.CourseID]
		if !ok {
			continue
		}
		out = append(out, roster.ClassWithCourse{Class: cls, Course: course})
	}
	return out
}

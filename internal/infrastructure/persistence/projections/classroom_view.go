// Package projections implements in-memory read models refreshed from the
// store whenever a change event is published.
package projections

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLASSROOM VIEW - snapshot of every table
// ══════════════════════════════════════════════════════════════════════════════

// ClassroomView keeps a copy of every table in memory. It is refreshed by
// subscribing Handle to the event bus; only the tables named by a
// ChangeEvent are reloaded.
type ClassroomView struct {
	mu sync.RWMutex

	// reloadMu serialises reloads so a slow reload cannot write back a table
	// another reload refreshed in the meantime.
	reloadMu sync.Mutex

	st store.Store

	teacher           *roster.TeacherProfile
	courses           []roster.Course
	classes           []roster.Class
	students          []roster.Student
	schedules         []schedule.Schedule
	attendanceRecords []attendance.Record
	dayRecords        []attendance.DayRecord

	// lastUpdated is the timestamp of the last refresh.
	lastUpdated time.Time

	// version is incremented on each refresh.
	version int64
}

// NewClassroomView creates an empty view over st. Call Reload to fill it.
func NewClassroomView(st store.Store) *ClassroomView {
	return &ClassroomView{
		st:                st,
		courses:           []roster.Course{},
		classes:           []roster.Class{},
		students:          []roster.Student{},
		schedules:         []schedule.Schedule{},
		attendanceRecords: []attendance.Record{},
		dayRecords:        []attendance.DayRecord{},
	}
}

// Handle is the event handler to subscribe to the bus.
func (v *ClassroomView) Handle(event shared.Event) error {
	var tables []string
	if ce, ok := event.(shared.ChangeEvent); ok {
		tables = ce.Tables
	}
	return v.Reload(context.Background(), tables...)
}

// Reload re-reads the given tables, or every table when none is given, in
// one read transaction.
func (v *ClassroomView) Reload(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		tables = store.Tables
	}

	v.reloadMu.Lock()
	defer v.reloadMu.Unlock()

	next := v.copyState()
	err := v.st.View(ctx, func(tx store.Tx) error {
		for _, table := range tables {
			if err := next.load(tx, table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reload classroom view: %w", err)
	}

	v.mu.Lock()
	v.teacher = next.teacher
	v.courses = next.courses
	v.classes = next.classes
	v.students = next.students
	v.schedules = next.schedules
	v.attendanceRecords = next.attendanceRecords
	v.dayRecords = next.dayRecords
	v.lastUpdated = time.Now()
	v.version++
	v.mu.Unlock()

	return nil
}

type state struct {
	teacher           *roster.TeacherProfile
	courses           []roster.Course
	classes           []roster.Class
	students          []roster.Student
	schedules         []schedule.Schedule
	attendanceRecords []attendance.Record
	dayRecords        []attendance.DayRecord
}

func (v *ClassroomView) copyState() *state {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return &state{
		teacher:           v.teacher,
		courses:           v.courses,
		classes:           v.classes,
		students:          v.students,
		schedules:         v.schedules,
		attendanceRecords: v.attendanceRecords,
		dayRecords:        v.dayRecords,
	}
}

func (s *state) load(tx store.Tx, table string) error {
	var err error
	switch table {
	case store.TableTeacher:
		var all []roster.TeacherProfile
		all, err = store.All[roster.TeacherProfile](tx, table)
		s.teacher = nil
		if len(all) > 0 {
			s.teacher = &all[0]
		}
	case store.TableCourses:
		s.courses, err = store.All[roster.Course](tx, table)
	case store.TableClasses:
		s.classes, err = store.All[roster.Class](tx, table)
	case store.TableStudents:
		s.students, err = store.All[roster.Student](tx, table)
	case store.TableSchedules:
		s.schedules, err = store.All[schedule.Schedule](tx, table)
	case store.TableAttendanceRecords:
		s.attendanceRecords, err = store.All[attendance.Record](tx, table)
	case store.TableDayRecords:
		s.dayRecords, err = store.All[attendance.DayRecord](tx, table)
	default:
		err = fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return err
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCESSORS
// ══════════════════════════════════════════════════════════════════════════════

// Slices returned by the accessors are copies; callers may modify them.

// Teacher returns the teacher profile, or nil before setup.
func (v *ClassroomView) Teacher() *roster.TeacherProfile {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.teacher == nil {
		return nil
	}
	t := *v.teacher
	return &t
}

// Courses returns every course.
func (v *ClassroomView) Courses() []roster.Course {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return clone(v.courses)
}

// Classes returns every class, including those whose course is missing.
func (v *ClassroomView) Classes() []roster.Class {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return clone(v.classes)
}

// Students returns every student.
func (v *ClassroomView) Students() []roster.Student {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return clone(v.students)
}

// ScheduleForYear returns the schedule of year, or nil when none exists.
func (v *ClassroomView) ScheduleForYear(year int) *schedule.Schedule {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, s := range v.schedules {
		if s.Year == year {
			cp := s
			cp.Entries = clone(s.Entries)
			return &cp
		}
	}
	return nil
}

// AttendanceRecords returns every attendance record.
func (v *ClassroomView) AttendanceRecords() []attendance.Record {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]attendance.Record, len(v.attendanceRecords))
	for i, r := range v.attendanceRecords {
		r.Records = clone(r.Records)
		out[i] = r
	}
	return out
}

// DayRecords returns every day record.
func (v *ClassroomView) DayRecords() []attendance.DayRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return clone(v.dayRecords)
}

// Version returns how many times the view has been refreshed.
func (v *ClassroomView) Version() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// LastUpdated returns when the view was last refreshed.
func (v *ClassroomView) LastUpdated() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastUpdated
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

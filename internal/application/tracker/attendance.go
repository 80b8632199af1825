package tracker

import (
	"context"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE
// ══════════════════════════════════════════════════════════════════════════════

// SetScheduleEntry adds a weekly slot for classID to the current-year
// schedule, creating the schedule on first use, and returns the entry id.
// The same class may be scheduled more than once on a weekday.
func (t *Tracker) SetScheduleEntry(ctx context.Context, classID string, weekday schedule.Weekday, hour string) (string, error) {
	entry := schedule.Entry{ID: t.newID(), ClassID: classID, Weekday: weekday, Hour: hour}
	if err := entry.Validate(); err != nil {
		return "", err
	}
	year := t.currentYear()

	err := t.commit(ctx, "SetScheduleEntry", shared.EventScheduleEntryAdded, entry.ID, []string{store.TableSchedules},
		func(tx store.Tx) (bool, error) {
			sched, found, err := scheduleForYear(tx, year)
			if err != nil {
				return false, err
			}
			if !found {
				sched = schedule.New(t.newID(), year)
			}
			sched.AddEntry(entry)
			return true, store.Save(tx, store.TableSchedules, sched.ID, sched)
		})
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// RemoveScheduleEntry deletes one entry from the current-year schedule.
func (t *Tracker) RemoveScheduleEntry(ctx context.Context, entryID string) error {
	year := t.currentYear()
	return t.commit(ctx, "RemoveScheduleEntry", shared.EventScheduleEntryRemoved, entryID, []string{store.TableSchedules},
		func(tx store.Tx) (bool, error) {
			sched, found, err := scheduleForYear(tx, year)
			if err != nil || !found {
				return false, err
			}
			if !sched.RemoveEntry(entryID) {
				return false, nil
			}
			return true, store.Save(tx, store.TableSchedules, sched.ID, sched)
		})
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

// SaveAttendance stores the marks of classID on date, replacing any marks
// already saved for that pair. date is "YYYY-MM-DD".
func (t *Tracker) SaveAttendance(ctx context.Context, classID, date string, marks []attendance.StudentAttendance) error {
	if marks == nil {
		marks = []attendance.StudentAttendance{}
	}
	record := attendance.Record{ID: t.newID(), ClassID: classID, Date: date, Records: marks}
	if err := record.Validate(); err != nil {
		return err
	}

	return t.commit(ctx, "SaveAttendance", shared.EventAttendanceSaved, classID, []string{store.TableAttendanceRecords},
		func(tx store.Tx) (bool, error) {
			existing, found, err := store.Find(tx, store.TableAttendanceRecords,
				func(r attendance.Record) bool { return r.Key() == record.Key() })
			if err != nil {
				return false, err
			}
			if found {
				record.ID = existing.ID
			}
			return true, store.Save(tx, store.TableAttendanceRecords, record.ID, record)
		})
}

// FinishDay closes date: skipped with reason when one is given, completed
// otherwise. A previous closing of the same date is overwritten.
func (t *Tracker) FinishDay(ctx context.Context, date string, reason *attendance.Reason) error {
	return t.commit(ctx, "FinishDay", shared.EventDayFinished, date, []string{store.TableDayRecords},
		func(tx store.Tx) (bool, error) {
			day, found, err := store.Find(tx, store.TableDayRecords,
				func(d attendance.DayRecord) bool { return d.Date == date })
			if err != nil {
				return false, err
			}
			if !found {
				day = attendance.DayRecord{ID: t.newID(), Date: date}
			}
			day.Finish(reason)
			if err := day.Validate(); err != nil {
				return false, err
			}
			return true, store.Save(tx, store.TableDayRecords, day.ID, day)
		})
}

package backup

import (
	"errors"
	"fmt"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

// Validate checks the document before anything is written: the version,
// every entity and the uniqueness rules the tables rely on. Entity failures
// are collected into one *shared.ValidationError whose field paths point
// into the document, e.g. "courses[2].grade".
func (d *Document) Validate() error {
	if d.Version != SupportedVersion {
		return fmt.Errorf("%w: got %d, want %d", shared.ErrDocumentVersion, d.Version, SupportedVersion)
	}

	v := &collector{out: &shared.ValidationError{Entity: "backup"}}

	if len(d.Teacher) > 1 {
		v.add("teacher", "must contain at most one profile")
	}
	for i, t := range d.Teacher {
		v.check(fmt.Sprintf("teacher[%d]", i), t.Validate())
	}
	for i, c := range d.Courses {
		v.check(fmt.Sprintf("courses[%d]", i), c.Validate())
	}
	for i, c := range d.Classes {
		v.check(fmt.Sprintf("classes[%d]", i), c.Validate())
	}
	for i, s := range d.Students {
		v.check(fmt.Sprintf("students[%d]", i), s.Validate())
	}

	years := make(map[int]struct{}, len(d.Schedules))
	for i, s := range d.Schedules {
		path := fmt.Sprintf("schedules[%d]", i)
		v.check(path, s.Validate())
		if _, dup := years[s.Year]; dup {
			v.add(path+".year", fmt.Sprintf("duplicate schedule for year %d", s.Year))
		}
		years[s.Year] = struct{}{}
	}

	keys := make(map[attendance.RecordKey]struct{}, len(d.AttendanceRecords))
	for i, r := range d.AttendanceRecords {
		path := fmt.Sprintf("attendanceRecords[%d]", i)
		v.check(path, r.Validate())
		if _, dup := keys[r.Key()]; dup {
			v.add(path, fmt.Sprintf("duplicate attendance for class %s on %s", r.ClassID, r.Date))
		}
		keys[r.Key()] = struct{}{}
	}

	dates := make(map[string]struct{}, len(d.DayRecords))
	for i, r := range d.DayRecords {
		path := fmt.Sprintf("dayRecords[%d]", i)
		v.check(path, r.Validate())
		if _, dup := dates[r.Date]; dup {
			v.add(path+".date", fmt.Sprintf("duplicate day record for %s", r.Date))
		}
		dates[r.Date] = struct{}{}
	}

	return v.err()
}

type collector struct {
	out *shared.ValidationError
}

func (c *collector) add(field, msg string) {
	c.out.Fields = append(c.out.Fields, shared.FieldError{Field: field, Message: msg})
}

func (c *collector) check(path string, err error) {
	if err == nil {
		return
	}
	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			c.add(path+"."+f.Field, f.Message)
		}
		return
	}
	c.add(path, err.Error())
}

func (c *collector) err() error {
	if len(c.out.Fields) == 0 {
		return nil
	}
	return c.out
}

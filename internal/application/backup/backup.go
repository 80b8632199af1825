// Package backup exports the whole dataset as a single JSON document and
// restores it. The document is the only interchange format of the tracker:
// it moves data between devices and serves as the teacher's backup.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// SupportedVersion is the only document version Import accepts.
const SupportedVersion = 1

// Document is the backup file layout.
type Document struct {
	Version           int                     `json:"version"`
	ExportedAt        time.Time               `json:"exportedAt"`
	Teacher           []roster.TeacherProfile `json:"teacher"`
	Courses           []roster.Course         `json:"courses"`
	Classes           []roster.Class          `json:"classes"`
	Students          []roster.Student        `json:"students"`
	Schedules         []schedule.Schedule     `json:"schedules"`
	AttendanceRecords []attendance.Record     `json:"attendanceRecords"`
	DayRecords        []attendance.DayRecord  `json:"dayRecords"`
}

// Export reads every table inside tx.
func Export(tx store.Tx, now time.Time) (*Document, error) {
	doc := &Document{Version: SupportedVersion, ExportedAt: now.UTC()}

	var err error
	if doc.Teacher, err = store.All[roster.TeacherProfile](tx, store.TableTeacher); err != nil {
		return nil, err
	}
	if doc.Courses, err = store.All[roster.Course](tx, store.TableCourses); err != nil {
		return nil, err
	}
	if doc.Classes, err = store.All[roster.Class](tx, store.TableClasses); err != nil {
		return nil, err
	}
	if doc.Students, err = store.All[roster.Student](tx, store.TableStudents); err != nil {
		return nil, err
	}
	if doc.Schedules, err = store.All[schedule.Schedule](tx, store.TableSchedules); err != nil {
		return nil, err
	}
	if doc.AttendanceRecords, err = store.All[attendance.Record](tx, store.TableAttendanceRecords); err != nil {
		return nil, err
	}
	if doc.DayRecords, err = store.All[attendance.DayRecord](tx, store.TableDayRecords); err != nil {
		return nil, err
	}

	return doc, nil
}

// Import replaces every table with the content of doc. Any failure leaves
// the error to the caller, who must roll tx back.
func Import(tx store.Tx, doc *Document) error {
	for _, table := range store.Tables {
		if err := tx.Clear(table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := addAll(tx, store.TableTeacher, doc.Teacher, func(v roster.TeacherProfile) string { return v.ID }); err != nil {
		return err
	}
	if err := addAll(tx, store.TableCourses, doc.Courses, func(v roster.Course) string { return v.ID }); err != nil {
		return err
	}
	if err := addAll(tx, store.TableClasses, doc.Classes, func(v roster.Class) string { return v.ID }); err != nil {
		return err
	}
	if err := addAll(tx, store.TableStudents, doc.Students, func(v roster.Student) string { return v.ID }); err != nil {
		return err
	}
	if err := addAll(tx, store.TableSchedules, doc.Schedules, func(v schedule.Schedule) string { return v.ID }); err != nil {
		return err
	}
	if err := addAll(tx, store.TableAttendanceRecords, doc.AttendanceRecords, func(v attendance.Record) string { return v.ID }); err != nil {
		return err
	}
	return addAll(tx, store.TableDayRecords, doc.DayRecords, func(v attendance.DayRecord) string { return v.ID })
}

func addAll[T any](tx store.Tx, table string, rows []T, idOf func(T) string) error {
	for _, row := range rows {
		if err := store.Add(tx, table, idOf(row), row); err != nil {
			return fmt.Errorf("import %s: %w", table, err)
		}
	}
	return nil
}

// Decode parses a document from r. It does not validate it.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedDocument, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", shared.ErrMalformedDocument)
	}
	return &doc, nil
}

// Write encodes doc to w with two-space indentation.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// FileName returns the suggested file name for a backup taken at now.
func FileName(now time.Time) string {
	return "asistencia-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

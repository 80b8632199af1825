// Package store defines the table store every persistence backend implements
// and typed JSON helpers on top of it.
//
// A store holds a fixed set of tables, each one a map from string id to a
// JSON document. All access happens inside a transaction: View for reads,
// Update for writes. Update commits only when its callback returns nil.
package store

import (
	"context"
	"errors"
)

// Table names.
const (
	TableTeacher           = "teacher_profile"
	TableCourses           = "courses"
	TableClasses           = "classes"
	TableStudents          = "students"
	TableSchedules         = "schedules"
	TableAttendanceRecords = "attendance_records"
	TableDayRecords        = "day_records"
)

// Tables lists every table in dependency order.
var Tables = []string{
	TableTeacher,
	TableCourses,
	TableClasses,
	TableStudents,
	TableSchedules,
	TableAttendanceRecords,
	TableDayRecords,
}

var (
	// ErrDuplicateKey is returned by Insert when the id already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownTable is returned when a table name is not in Tables.
	ErrUnknownTable = errors.New("unknown table")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// Store is a transactional table store.
type Store interface {
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(Tx) error) error

	// Update runs fn in a read-write transaction that commits iff fn returns nil.
	Update(ctx context.Context, fn func(Tx) error) error

	// Close releases the underlying resources.
	Close() error
}

// Tx is a transaction over the tables.
type Tx interface {
	// Get returns the value stored under id, or nil when missing.
	Get(table, id string) ([]byte, error)

	// Insert stores value under a new id. ErrDuplicateKey when id exists.
	Insert(table, id string, value []byte) error

	// Put stores value under id, replacing any previous value.
	Put(table, id string, value []byte) error

	// Delete removes id. Missing ids are ignored.
	Delete(table, id string) error

	// Clear removes every row of table.
	Clear(table string) error

	// ForEach calls fn for every row in key order. fn must not write to tx.
	ForEach(table string, fn func(id string, value []byte) error) error
}

// IsTable reports whether name is a known table.
func IsTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}

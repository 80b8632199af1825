// Package attendance holds per-class daily attendance and the per-day
// closing status of the teacher's agenda.
package attendance

import (
	"github.com/go-playground/validator/v10"

	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status is the presence mark of one student in one class.
type Status string

const (
	StatusPresent Status = "Presente"
	StatusAbsent  Status = "Ausente"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent:
		return true
	default:
		return false
	}
}

// Label returns the single-letter mark shown in attendance lists.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "P"
	case StatusAbsent:
		return "A"
	default:
		return "?"
	}
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	switch s {
	case StatusPresent:
		return StatusAbsent
	default:
		return StatusPresent
	}
}

// DayStatus is the closing state of a calendar day.
type DayStatus string

const (
	DayPending   DayStatus = "pending"
	DayCompleted DayStatus = "completed"
	DaySkipped   DayStatus = "skipped"
)

// Valid reports whether s is a known day status.
func (s DayStatus) Valid() bool {
	switch s {
	case DayPending, DayCompleted, DaySkipped:
		return true
	default:
		return false
	}
}

// Closed reports whether the day no longer accepts attendance.
func (s DayStatus) Closed() bool {
	switch s {
	case DayCompleted, DaySkipped:
		return true
	case DayPending:
		return false
	default:
		return false
	}
}

// Label returns the Spanish label of the day status.
func (s DayStatus) Label() string {
	switch s {
	case DayPending:
		return "Pendiente"
	case DayCompleted:
		return "Completado"
	case DaySkipped:
		return "Sin clases"
	default:
		return string(s)
	}
}

// Reason explains why a day was skipped.
type Reason string

const (
	// ReasonPNFS - Programa Nacional de Formación Situada (teacher training day).
	ReasonPNFS           Reason = "PNFS"
	ReasonHoliday        Reason = "Feriado"
	ReasonActivityChange Reason = "Cambio de actividad"
)

// Reasons lists every skip reason in display order.
var Reasons = []Reason{ReasonPNFS, ReasonHoliday, ReasonActivityChange}

// Valid reports whether r is a known reason.
func (r Reason) Valid() bool {
	switch r {
	case ReasonPNFS, ReasonHoliday, ReasonActivityChange:
		return true
	default:
		return false
	}
}

// Label returns the reason as shown to the teacher.
func (r Reason) Label() string {
	switch r {
	case ReasonPNFS, ReasonHoliday, ReasonActivityChange:
		return string(r)
	default:
		return ""
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// StudentAttendance is the mark of one student.
type StudentAttendance struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    Status `json:"status" validate:"enum"`
}

// Record is the attendance of one class on one date.
// (ClassID, Date) is unique across all records.
type Record struct {
	ID      string              `json:"id" validate:"required"`
	ClassID string              `json:"classId" validate:"required"`
	Date    string              `json:"date" validate:"isodate"`
	Records []StudentAttendance `json:"records" validate:"dive"`
}

// Validate checks the record and every student mark.
func (r Record) Validate() error {
	return shared.Validate("attendance record", r)
}

// Key returns the compound (classId, date) key of the record.
func (r Record) Key() RecordKey {
	return RecordKey{ClassID: r.ClassID, Date: r.Date}
}

// StatusOf returns the mark of studentID, or false when it is not recorded.
func (r Record) StatusOf(studentID string) (Status, bool) {
	for _, sa := range r.Records {
		if sa.StudentID == studentID {
			return sa.Status, true
		}
	}
	return "", false
}

// Count returns how many students are present and absent.
func (r Record) Count() (present, absent int) {
	for _, sa := range r.Records {
		switch sa.Status {
		case StatusPresent:
			present++
		case StatusAbsent:
			absent++
		}
	}
	return present, absent
}

// RecordKey identifies an attendance record.
type RecordKey struct {
	ClassID string
	Date    string
}

// DayRecord is the closing status of one date. Date is unique across all
// day records. Reason is set if and only if Status is DaySkipped.
type DayRecord struct {
	ID     string    `json:"id" validate:"required"`
	Date   string    `json:"date" validate:"isodate"`
	Status DayStatus `json:"status" validate:"enum"`
	Reason Reason    `json:"reason,omitempty"`
}

// Validate checks the day record including the reason rule.
func (d DayRecord) Validate() error {
	return shared.Validate("day record", d)
}

// Finish closes the day: skipped with the given reason, or completed when
// reason is nil. Any previous status is overwritten.
func (d *DayRecord) Finish(reason *Reason) {
	if reason != nil {
		d.Status = DaySkipped
		d.Reason = *reason
		return
	}
	d.Status = DayCompleted
	d.Reason = ""
}

const reasonTag = "reason"

func init() {
	shared.RegisterStructRule(reasonTag, "{0} must be set only when the day is skipped", dayRecordRule, DayRecord{})
}

func dayRecordRule(sl validator.StructLevel) {
	d := sl.Current().Interface().(DayRecord)

	switch {
	case d.Status == DaySkipped && !d.Reason.Valid():
		sl.ReportError(d.Reason, "reason", "Reason", reasonTag, "")
	case d.Status != DaySkipped && d.Reason != "":
		sl.ReportError(d.Reason, "reason", "Reason", reasonTag, "")
	}
}

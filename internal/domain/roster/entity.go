package roster

import (
	"fmt"

	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Level is the school level a course belongs to.
type Level string

const (
	// LevelPrimary - escuela primaria.
	LevelPrimary Level = "Primario"
	// LevelSecondary - escuela secundaria.
	LevelSecondary Level = "Secundario"
)

// Levels lists every level in display order.
var Levels = []Level{LevelPrimary, LevelSecondary}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelPrimary, LevelSecondary:
		return true
	default:
		return false
	}
}

// Label returns the feminine form used in course names ("Primaria").
func (l Level) Label() string {
	switch l {
	case LevelPrimary:
		return "Primaria"
	case LevelSecondary:
		return "Secundaria"
	default:
		return string(l)
	}
}

// Division is the section letter of a course.
type Division string

const (
	DivisionA Division = "A"
	DivisionB Division = "B"
	DivisionC Division = "C"
	DivisionD Division = "D"
)

// Divisions lists every division in display order.
var Divisions = []Division{DivisionA, DivisionB, DivisionC, DivisionD}

// Valid reports whether d is a known division.
func (d Division) Valid() bool {
	switch d {
	case DivisionA, DivisionB, DivisionC, DivisionD:
		return true
	default:
		return false
	}
}

// Grade is the school year of a course, 1 through 6.
type Grade int

const (
	MinGrade Grade = 1
	MaxGrade Grade = 6
)

// Valid reports whether g is within the supported range.
func (g Grade) Valid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// Label returns the ordinal form, e.g. "7°".
func (g Grade) Label() string {
	return fmt.Sprintf("%d°", int(g))
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// TeacherProfile is the single row describing the device owner.
type TeacherProfile struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	SetupComplete bool   `json:"setupComplete"`
}

// Course groups students by grade, level and division. Duplicates are allowed.
type Course struct {
	ID       string   `json:"id" validate:"required"`
	Grade    Grade    `json:"grade" validate:"enum"`
	Level    Level    `json:"level" validate:"enum"`
	Division Division `json:"division" validate:"enum"`
}

// Class is a subject taught to one course, e.g. "Matemáticas".
// A class whose course no longer exists is hidden from read views.
type Class struct {
	ID       string `json:"id" validate:"required"`
	CourseID string `json:"courseId" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// Student belongs to one course and appears in every class of that course.
type Student struct {
	ID                   string `json:"id" validate:"required"`
	Name                 string `json:"name" validate:"required"`
	IdentificationNumber string `json:"identificationNumber"`
	CourseID             string `json:"courseId" validate:"required"`
}

// ClassWithCourse pairs a class with its resolved course.
type ClassWithCourse struct {
	Class
	Course Course `json:"course"`
}

// DisplayName returns "Matemáticas - 7° Primaria A".
func (c ClassWithCourse) DisplayName() string {
	return FormatClassName(c.Class, c.Course)
}

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewCourse holds the fields of a course that is about to be created.
type NewCourse struct {
	Grade    Grade
	Level    Level
	Division Division
}

// Build assigns id and validates the resulting course.
func (p NewCourse) Build(id string) (Course, error) {
	c := Course{ID: id, Grade: p.Grade, Level: p.Level, Division: p.Division}
	return c, c.Validate()
}

// NewClass holds the fields of a class that is about to be created.
type NewClass struct {
	CourseID string
	Name     string
}

// Build assigns id, trims the name and validates the resulting class.
func (p NewClass) Build(id string) (Class, error) {
	c := Class{ID: id, CourseID: p.CourseID, Name: shared.CleanString(p.Name)}
	return c, c.Validate()
}

// NewStudent holds the fields of a student that is about to be created.
type NewStudent struct {
	Name                 string
	IdentificationNumber string
	CourseID             string
}

// Build assigns id, trims text fields and validates the resulting student.
func (p NewStudent) Build(id string) (Student, error) {
	s := Student{
		ID:                   id,
		Name:                 shared.CleanString(p.Name),
		IdentificationNumber: shared.CleanString(p.IdentificationNumber),
		CourseID:             p.CourseID,
	}
	return s, s.Validate()
}

// Validate checks the teacher profile.
func (t TeacherProfile) Validate() error {
	return shared.Validate("teacher", t)
}

// Validate checks the course.
func (c Course) Validate() error {
	return shared.Validate("course", c)
}

// Validate checks the class.
func (c Class) Validate() error {
	return shared.Validate("class", c)
}

// Validate checks the student.
func (s Student) Validate() error {
	return shared.Validate("student", s)
}

// ══════════════════════════════════════════════════════════════════════════════
// FORMATTING
// ══════════════════════════════════════════════════════════════════════════════

// FormatCourseName renders a course as "7° Primaria A".
func FormatCourseName(c Course) string {
	return fmt.Sprintf("%s %s %s", c.Grade.Label(), c.Level.Label(), c.Division)
}

// FormatClassName renders a class with its course as "Matemáticas - 7° Primaria A".
func FormatClassName(cls Class, course Course) string {
	return cls.Name + " - " + FormatCourseName(course)
}

package roster

import "github.com/attendance-tracker/tracker/internal/domain/shared"

// CoursePatch holds the course fields to change.
// Nil fields are left untouched.
type CoursePatch struct {
	Grade    *Grade
	Level    *Level
	Division *Division
}

// IsEmpty reports whether the patch changes nothing.
func (p CoursePatch) IsEmpty() bool {
	return p.Grade == nil && p.Level == nil && p.Division == nil
}

// Apply returns a copy of c with the patch merged in and validated.
func (p CoursePatch) Apply(c Course) (Course, error) {
	if p.Grade != nil {
		c.Grade = *p.Grade
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
	if p.Division != nil {
		c.Division = *p.Division
	}
	return c, c.Validate()
}

// ClassPatch holds the class fields to change.
type ClassPatch struct {
	CourseID *string
	Name     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ClassPatch) IsEmpty() bool {
	return p.CourseID == nil && p.Name == nil
}

// Apply returns a copy of c with the patch merged in and validated.
func (p ClassPatch) Apply(c Class) (Class, error) {
	if p.CourseID != nil {
		c.CourseID = *p.CourseID
	}
	if p.Name != nil {
		c.Name = shared.CleanString(*p.Name)
	}
	return c, c.Validate()
}

// StudentPatch holds the student fields to change.
type StudentPatch struct {
	Name                 *string
	IdentificationNumber *string
	CourseID             *string
}

// IsEmpty reports whether the patch changes nothing.
func (p StudentPatch) IsEmpty() bool {
	return p.Name == nil && p.IdentificationNumber == nil && p.CourseID == nil
}

// Apply returns a copy of s with the patch merged in and validated.
func (p StudentPatch) Apply(s Student) (Student, error) {
	if p.Name != nil {
		s.Name = shared.CleanString(*p.Name)
	}
	if p.IdentificationNumber != nil {
		s.IdentificationNumber = shared.CleanString(*p.IdentificationNumber)
	}
	if p.CourseID != nil {
		s.CourseID = *p.CourseID
	}
	return s, s.Validate()
}

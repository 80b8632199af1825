// Package roster contains the teacher profile and the people-and-groups side
// of the attendance tracker: courses, classes and students.
//
// A Course is a grade/level/division grouping ("7° Primaria A"). A Class is a
// subject taught to one course, and a Student belongs to exactly one course,
// which makes them part of every class of that course.
//
// # References
//
// Classes and students reference their course by id. The reference is not
// enforced on write: a class or student whose course is missing is simply
// left out of read views. Deleting a course through the tracker removes its
// classes and students in the same transaction.
//
// # Updates
//
// Partial updates are expressed with patch structs whose pointer fields are
// nil when untouched:
//
//	name := "Lengua"
//	updated, err := roster.ClassPatch{Name: &name}.Apply(current)
//
// Apply always works on a copy and validates the merged entity, so an
// invalid patch never reaches the store.
package roster

package tracker

import (
	"context"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEACHER
// ══════════════════════════════════════════════════════════════════════════════

// SetTeacherName stores the teacher's name and marks setup as complete.
// The existing profile is updated; one is created on first use.
func (t *Tracker) SetTeacherName(ctx context.Context, name string) error {
	name = shared.CleanString(name)
	if name == "" {
		return shared.NewValidationError("teacher", "name", "name is required")
	}

	return t.commit(ctx, "SetTeacherName", shared.EventTeacherUpdated, "", []string{store.TableTeacher},
		func(tx store.Tx) (bool, error) {
			profiles, err := store.All[roster.TeacherProfile](tx, store.TableTeacher)
			if err != nil {
				return false, err
			}

			profile := roster.TeacherProfile{ID: t.newID()}
			if len(profiles) > 0 {
				profile = profiles[0]
			}
			if profile.Name == name && profile.SetupComplete {
				return false, nil
			}
			profile.Name = name
			profile.SetupComplete = true

			if err := profile.Validate(); err != nil {
				return false, err
			}
			return true, store.Save(tx, store.TableTeacher, profile.ID, profile)
		})
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSES
// ══════════════════════════════════════════════════════════════════════════════

// AddCourse creates a course and returns its id.
func (t *Tracker) AddCourse(ctx context.Context, in roster.NewCourse) (string, error) {
	course, err := in.Build(t.newID())
	if err != nil {
		return "", err
	}
	err = t.commit(ctx, "AddCourse", shared.EventCourseAdded, course.ID, []string{store.TableCourses},
		func(tx store.Tx) (bool, error) {
			return true, store.Add(tx, store.TableCourses, course.ID, course)
		})
	if err != nil {
		return "", err
	}
	return course.ID, nil
}

// UpdateCourse merges patch into the course. Unknown ids are ignored.
func (t *Tracker) UpdateCourse(ctx context.Context, id string, patch roster.CoursePatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return t.commit(ctx, "UpdateCourse", shared.EventCourseUpdated, id, []string{store.TableCourses},
		func(tx store.Tx) (bool, error) {
			course, found, err := store.Load[roster.Course](tx, store.TableCourses, id)
			if err != nil || !found {
				return false, err
			}
			if course, err = patch.Apply(course); err != nil {
				return false, err
			}
			return true, store.Save(tx, store.TableCourses, id, course)
		})
}

// DeleteCourse removes the course together with its classes, its students
// and every schedule entry of those classes. The cascade runs even when the
// course row itself is already gone.
func (t *Tracker) DeleteCourse(ctx context.Context, id string) error {
	tables := []string{store.TableCourses, store.TableClasses, store.TableStudents, store.TableSchedules}

	return t.commit(ctx, "DeleteCourse", shared.EventCourseDeleted, id, tables,
		func(tx store.Tx) (bool, error) {
			classes, err := store.DeleteWhere(tx, store.TableClasses,
				func(c roster.Class) string { return c.ID },
				func(c roster.Class) bool { return c.CourseID == id })
			if err != nil {
				return false, err
			}

			students, err := store.DeleteWhere(tx, store.TableStudents,
				func(s roster.Student) string { return s.ID },
				func(s roster.Student) bool { return s.CourseID == id })
			if err != nil {
				return false, err
			}

			classIDs := make([]string, len(classes))
			for i, c := range classes {
				classIDs[i] = c.ID
			}
			removed, err := removeScheduledClasses(tx, classIDs...)
			if err != nil {
				return false, err
			}

			_, found, err := store.Load[roster.Course](tx, store.TableCourses, id)
			if err != nil {
				return false, err
			}
			if found {
				if err := tx.Delete(store.TableCourses, id); err != nil {
					return false, err
				}
			}

			return found || len(classes) > 0 || len(students) > 0 || removed > 0, nil
		})
}

// ══════════════════════════════════════════════════════════════════════════════
// CLASSES
// ══════════════════════════════════════════════════════════════════════════════

// AddClass creates a class and returns its id. The course is not required
// to exist; classes without a course are hidden from read views.
func (t *Tracker) AddClass(ctx context.Context, in roster.NewClass) (string, error) {
	class, err := in.Build(t.newID())
	if err != nil {
		return "", err
	}
	err = t.commit(ctx, "AddClass", shared.EventClassAdded, class.ID, []string{store.TableClasses},
		func(tx store.Tx) (bool, error) {
			return true, store.Add(tx, store.TableClasses, class.ID, class)
		})
	if err != nil {
		return "", err
	}
	return class.ID, nil
}

// UpdateClass merges patch into the class. Unknown ids are ignored.
func (t *Tracker) UpdateClass(ctx context.Context, id string, patch roster.ClassPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return t.commit(ctx, "UpdateClass", shared.EventClassUpdated, id, []string{store.TableClasses},
		func(tx store.Tx) (bool, error) {
			class, found, err := store.Load[roster.Class](tx, store.TableClasses, id)
			if err != nil || !found {
				return false, err
			}
			if class, err = patch.Apply(class); err != nil {
				return false, err
			}
			return true, store.Save(tx, store.TableClasses, id, class)
		})
}

// DeleteClass removes the class, its attendance records and its schedule
// entries.
func (t *Tracker) DeleteClass(ctx context.Context, id string) error {
	tables := []string{store.TableClasses, store.TableAttendanceRecords, store.TableSchedules}

	return t.commit(ctx, "DeleteClass", shared.EventClassDeleted, id, tables,
		func(tx store.Tx) (bool, error) {
			_, found, err := store.Load[roster.Class](tx, store.TableClasses, id)
			if err != nil {
				return false, err
			}
			if found {
				if err := tx.Delete(store.TableClasses, id); err != nil {
					return false, err
				}
			}

			records, err := store.DeleteWhere(tx, store.TableAttendanceRecords,
				func(r attendance.Record) string { return r.ID },
				func(r attendance.Record) bool { return r.ClassID == id })
			if err != nil {
				return false, err
			}

			removed, err := removeScheduledClasses(tx, id)
			if err != nil {
				return false, err
			}

			return found || len(records) > 0 || removed > 0, nil
		})
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

// AddStudent creates a student and returns its id.
func (t *Tracker) AddStudent(ctx context.Context, in roster.NewStudent) (string, error) {
	student, err := in.Build(t.newID())
	if err != nil {
		return "", err
	}
	err = t.commit(ctx, "AddStudent", shared.EventStudentAdded, student.ID, []string{store.TableStudents},
		func(tx store.Tx) (bool, error) {
			return true, store.Add(tx, store.TableStudents, student.ID, student)
		})
	if err != nil {
		return "", err
	}
	return student.ID, nil
}

// UpdateStudent merges patch into the student. Unknown ids are ignored.
func (t *Tracker) UpdateStudent(ctx context.Context, id string, patch roster.StudentPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return t.commit(ctx, "UpdateStudent", shared.EventStudentUpdated, id, []string{store.TableStudents},
		func(tx store.Tx) (bool, error) {
			student, found, err := store.Load[roster.Student](tx, store.TableStudents, id)
			if err != nil || !found {
				return false, err
			}
			if student, err = patch.Apply(student); err != nil {
				return false, err
			}
			return true, store.Save(tx, store.TableStudents, id, student)
		})
}

// DeleteStudent removes the student. Past attendance marks are kept.
func (t *Tracker) DeleteStudent(ctx context.Context, id string) error {
	return t.commit(ctx, "DeleteStudent", shared.EventStudentDeleted, id, []string{store.TableStudents},
		func(tx store.Tx) (bool, error) {
			_, found, err := store.Load[roster.Student](tx, store.TableStudents, id)
			if err != nil || !found {
				return false, err
			}
			return true, tx.Delete(store.TableStudents, id)
		})
}

// removeScheduledClasses strips every entry of classIDs from the schedules
// of all years and returns how many entries were removed.
func removeScheduledClasses(tx store.Tx, classIDs ...string) (int, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	schedules, err := store.All[schedule.Schedule](tx, store.TableSchedules)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, sched := range schedules {
		n := sched.RemoveClasses(classIDs...)
		if n == 0 {
			continue
		}
		if err := store.Save(tx, store.TableSchedules, sched.ID, sched); err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func scheduleForYear(tx store.Tx, year int) (schedule.Schedule, bool, error) {
	return store.Find(tx, store.TableSchedules, func(s schedule.Schedule) bool { return s.Year == year })
}

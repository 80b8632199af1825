package main

import (
	"context"
	"fmt"

	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

// teacher shows or sets the teacher's name.
func (cli *commandLine) teacher(ctx context.Context, args []string) error {
	fs := cli.flagSet("teacher")
	name := fs.String("name", "", "The teacher's full name.")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *name == "" {
		t := cli.tr.Teacher()
		if t == nil {
			fmt.Fprintln(cli.out, "no teacher set up yet")
			return nil
		}
		fmt.Fprintln(cli.out, t.Name)
		return nil
	}
	return cli.tr.SetTeacherName(ctx, *name)
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSES
// ══════════════════════════════════════════════════════════════════════════════

func (cli *commandLine) course(ctx context.Context, args []string) error {
	act, rest, err := action(args, func() {
		fmt.Fprintln(cli.out, "Usage: course add -grade N -level Primario|Secundario -division A-D")
		fmt.Fprintln(cli.out, "       course update -id ID [-grade N] [-level L] [-division D]")
		fmt.Fprintln(cli.out, "       course rm -id ID")
		fmt.Fprintln(cli.out, "       course ls")
	})
	if err != nil {
		return err
	}

	fs := cli.flagSet("course " + act)
	id := fs.String("id", "", "The course id.")
	grade := fs.Int("grade", 0, "The grade, 1 to 6.")
	level := fs.String("level", "", "Primario or Secundario.")
	division := fs.String("division", "", "A, B, C or D.")
	if err := parse(fs, rest); err != nil {
		return err
	}

	switch act {
	case "add":
		newID, err := cli.tr.AddCourse(ctx, roster.NewCourse{
			Grade:    roster.Grade(*grade),
			Level:    roster.Level(*level),
			Division: roster.Division(*division),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, newID)
		return nil
	case "update":
		if err := required(fs, "id"); err != nil {
			return err
		}
		var patch roster.CoursePatch
		set := setFlags(fs)
		if set["grade"] {
			g := roster.Grade(*grade)
			patch.Grade = &g
		}
		if set["level"] {
			l := roster.Level(*level)
			patch.Level = &l
		}
		if set["division"] {
			d := roster.Division(*division)
			patch.Division = &d
		}
		return cli.tr.UpdateCourse(ctx, *id, patch)
	case "rm":
		if err := required(fs, "id"); err != nil {
			return err
		}
		return cli.tr.DeleteCourse(ctx, *id)
	case "ls":
		w := cli.table()
		for _, c := range cli.tr.Courses() {
			fmt.Fprintf(w, "%s\t%s\t%d students\n", c.ID, roster.FormatCourseName(c), len(cli.tr.GetStudentsByCourse(c.ID)))
		}
		return w.Flush()
	default:
		return fmt.Errorf("course %q: no such command", act)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLASSES
// ══════════════════════════════════════════════════════════════════════════════

func (cli *commandLine) class(ctx context.Context, args []string) error {
	act, rest, err := action(args, func() {
		fmt.Fprintln(cli.out, "Usage: class add -course ID -name NAME")
		fmt.Fprintln(cli.out, "       class update -id ID [-course ID] [-name NAME]")
		fmt.Fprintln(cli.out, "       class rm -id ID")
		fmt.Fprintln(cli.out, "       class ls")
	})
	if err != nil {
		return err
	}

	fs := cli.flagSet("class " + act)
	id := fs.String("id", "", "The class id.")
	course := fs.String("course", "", "The id of the course taking the class.")
	name := fs.String("name", "", "The subject, e.g. Matemáticas.")
	if err := parse(fs, rest); err != nil {
		return err
	}

	switch act {
	case "add":
		newID, err := cli.tr.AddClass(ctx, roster.NewClass{CourseID: *course, Name: *name})
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, newID)
		return nil
	case "update":
		if err := required(fs, "id"); err != nil {
			return err
		}
		var patch roster.ClassPatch
		set := setFlags(fs)
		if set["course"] {
			patch.CourseID = course
		}
		if set["name"] {
			patch.Name = name
		}
		return cli.tr.UpdateClass(ctx, *id, patch)
	case "rm":
		if err := required(fs, "id"); err != nil {
			return err
		}
		return cli.tr.DeleteClass(ctx, *id)
	case "ls":
		w := cli.table()
		for _, c := range cli.tr.VisibleClasses() {
			fmt.Fprintf(w, "%s\t%s\n", c.ID, c.DisplayName())
		}
		return w.Flush()
	default:
		return fmt.Errorf("class %q: no such command", act)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

func (cli *commandLine) student(ctx context.Context, args []string) error {
	act, rest, err := action(args, func() {
		fmt.Fprintln(cli.out, "Usage: student add -course ID -name NAME [-dni NUMBER]")
		fmt.Fprintln(cli.out, "       student update -id ID [-course ID] [-name NAME] [-dni NUMBER]")
		fmt.Fprintln(cli.out, "       student rm -id ID")
		fmt.Fprintln(cli.out, "       student ls [-course ID]")
	})
	if err != nil {
		return err
	}

	fs := cli.flagSet("student " + act)
	id := fs.String("id", "", "The student id.")
	course := fs.String("course", "", "The id of the student's course.")
	name := fs.String("name", "", "The student's full name.")
	dni := fs.String("dni", "", "The identification number.")
	if err := parse(fs, rest); err != nil {
		return err
	}

	switch act {
	case "add":
		newID, err := cli.tr.AddStudent(ctx, roster.NewStudent{Name: *name, IdentificationNumber: *dni, CourseID: *course})
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, newID)
		return nil
	case "update":
		if err := required(fs, "id"); err != nil {
			return err
		}
		var patch roster.StudentPatch
		set := setFlags(fs)
		if set["course"] {
			patch.CourseID = course
		}
		if set["name"] {
			patch.Name = name
		}
		if set["dni"] {
			patch.IdentificationNumber = dni
		}
		return cli.tr.UpdateStudent(ctx, *id, patch)
	case "rm":
		if err := required(fs, "id"); err != nil {
			return err
		}
		return cli.tr.DeleteStudent(ctx, *id)
	case "ls":
		students := cli.tr.Students()
		if *course != "" {
			if cli.tr.GetCourseByID(*course) == nil {
				return fmt.Errorf("%w: %s", shared.ErrCourseNotFound, *course)
			}
			students = cli.tr.GetStudentsByCourse(*course)
		}
		w := cli.table()
		for _, s := range students {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.IdentificationNumber)
		}
		return w.Flush()
	default:
		return fmt.Errorf("student %q: no such command", act)
	}
}

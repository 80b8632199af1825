package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/attendance-tracker/tracker/internal/application/tracker"
	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

func (cli *commandLine) schedule(ctx context.Context, args []string) error {
	act, rest, err := action(args, func() {
		fmt.Fprintln(cli.out, "Usage: schedule add -class ID -day 1-5|Lunes..Viernes -hour HH:MM")
		fmt.Fprintln(cli.out, "       schedule rm -id ENTRY_ID")
		fmt.Fprintln(cli.out, "       schedule ls")
	})
	if err != nil {
		return err
	}

	fs := cli.flagSet("schedule " + act)
	id := fs.String("id", "", "The schedule entry id.")
	class := fs.String("class", "", "The class id.")
	day := fs.String("day", "", "The weekday, 1 (Monday) to 5 (Friday) or its Spanish name.")
	hour := fs.String("hour", "", "The start time, zero-padded HH:MM.")
	if err := parse(fs, rest); err != nil {
		return err
	}

	switch act {
	case "add":
		if err := required(fs, "class", "day", "hour"); err != nil {
			return err
		}
		w, err := parseWeekday(*day)
		if err != nil {
			return err
		}
		entryID, err := cli.tr.SetScheduleEntry(ctx, *class, w, *hour)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, entryID)
		return nil
	case "rm":
		if err := required(fs, "id"); err != nil {
			return err
		}
		return cli.tr.RemoveScheduleEntry(ctx, *id)
	case "ls":
		sched := cli.tr.Schedule()
		if sched == nil {
			fmt.Fprintln(cli.out, "no schedule for this year")
			return nil
		}
		names := make(map[string]string)
		for _, c := range cli.tr.VisibleClasses() {
			names[c.ID] = c.DisplayName()
		}
		tw := cli.table()
		for _, w := range schedule.Weekdays {
			for _, e := range sched.EntriesFor(w) {
				name, ok := names[e.ClassID]
				if !ok {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, w.Label(), e.Hour, name)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("schedule %q: no such command", act)
	}
}

// day prints the overview of one date.
func (cli *commandLine) day(args []string) error {
	fs := cli.flagSet("day")
	date := fs.String("date", cli.today(), "The date, YYYY-MM-DD.")
	if err := parse(fs, args); err != nil {
		return err
	}
	t, err := checkDate(*date)
	if err != nil {
		return err
	}

	ov := cli.tr.DayOverview(t)
	fmt.Fprintln(cli.out, timeutil.FormatWithWeekday(t))

	switch ov.State {
	case tracker.DayWeekend:
		fmt.Fprintln(cli.out, "weekend, no classes")
		return nil
	case tracker.DayClosed:
		line := "day " + ov.Record.Status.Label()
		if ov.Record.Reason != "" {
			line += ": " + ov.Record.Reason.Label()
		}
		fmt.Fprintln(cli.out, line)
	case tracker.DayNoClasses:
		fmt.Fprintln(cli.out, "no classes scheduled")
		return nil
	}

	tw := cli.table()
	for _, c := range ov.Classes {
		mark := "[ ]"
		if c.HasAttendance {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, c.ID, c.DisplayName())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d pending\n", ov.Pending)
	return nil
}

// mark saves the attendance of one class: every student of its course is
// present except the ones listed with -absent.
func (cli *commandLine) mark(ctx context.Context, args []string) error {
	fs := cli.flagSet("mark")
	classID := fs.String("class", "", "The class id.")
	date := fs.String("date", cli.today(), "The date, YYYY-MM-DD.")
	absent := fs.String("absent", "", "Comma separated ids of absent students.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "class"); err != nil {
		return err
	}
	t, err := checkDate(*date)
	if err != nil {
		return err
	}

	class := cli.tr.GetClassByID(*classID)
	if class == nil {
		return fmt.Errorf("%w: %s", shared.ErrClassNotFound, *classID)
	}
	students := cli.tr.GetStudentsByCourse(class.CourseID)

	missing := make(map[string]bool)
	for _, id := range splitIDs(*absent) {
		missing[id] = true
	}

	marks := make([]attendance.StudentAttendance, 0, len(students))
	for _, s := range students {
		status := attendance.StatusPresent
		if missing[s.ID] {
			status = attendance.StatusAbsent
			delete(missing, s.ID)
		}
		marks = append(marks, attendance.StudentAttendance{StudentID: s.ID, Status: status})
	}
	if len(missing) > 0 {
		ids := slices.Sorted(maps.Keys(missing))
		return fmt.Errorf("%w in %s: %s", shared.ErrStudentNotFound, class.Name, strings.Join(ids, ", "))
	}

	if err := cli.tr.SaveAttendance(ctx, class.ID, *date, marks); err != nil {
		return err
	}

	present, absentCount := attendance.Record{Records: marks}.Count()
	name := class.Name
	if course := cli.tr.GetCourseByID(class.CourseID); course != nil {
		name = roster.FormatClassName(*class, *course)
	}
	fmt.Fprintf(cli.out, "%s, %s: %d present, %d absent\n", name, timeutil.FormatNavbar(t), present, absentCount)
	return nil
}

// finish closes a day.
func (cli *commandLine) finish(ctx context.Context, args []string) error {
	fs := cli.flagSet("finish")
	date := fs.String("date", cli.today(), "The date, YYYY-MM-DD.")
	reason := fs.String("reason", "", `Why the day was skipped: PNFS, Feriado or "Cambio de actividad".`)
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := checkDate(*date); err != nil {
		return err
	}

	var r *attendance.Reason
	if *reason != "" {
		v := attendance.Reason(*reason)
		r = &v
	}
	return cli.tr.FinishDay(ctx, *date, r)
}

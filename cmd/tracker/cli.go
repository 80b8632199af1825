package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/attendance-tracker/tracker/internal/application/tracker"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	tr  *tracker.Tracker
	out io.Writer
	now func() time.Time // mockable
}

func newCommandLine(tr *tracker.Tracker, out io.Writer) *commandLine {
	return &commandLine{tr: tr, out: out, now: timeutil.Now}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  teacher [-name NAME]                                   - show or set the teacher's name")
	fmt.Fprintln(cli.out, "  course add|update|rm|ls                                - manage courses")
	fmt.Fprintln(cli.out, "  class add|update|rm|ls                                 - manage classes")
	fmt.Fprintln(cli.out, "  student add|update|rm|ls                               - manage students")
	fmt.Fprintln(cli.out, "  schedule add|rm|ls                                     - manage this year's weekly schedule")
	fmt.Fprintln(cli.out, "  day [-date YYYY-MM-DD]                                 - show the classes of a day")
	fmt.Fprintln(cli.out, "  mark -class ID [-date YYYY-MM-DD] [-absent ID,ID]      - take attendance, everyone else is present")
	fmt.Fprintln(cli.out, "  finish [-date YYYY-MM-DD] [-reason REASON]             - close a day, skipped when a reason is given")
	fmt.Fprintln(cli.out, "  export [-o FILE|-]                                     - write a backup")
	fmt.Fprintln(cli.out, "  import -f FILE                                         - replace all data with a backup")
	fmt.Fprintln(cli.out, "  reset -yes                                             - delete all data")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	rest := args[2:]
	switch args[1] {
	case "teacher":
		return cli.teacher(ctx, rest)
	case "course":
		return cli.course(ctx, rest)
	case "class":
		return cli.class(ctx, rest)
	case "student":
		return cli.student(ctx, rest)
	case "schedule":
		return cli.schedule(ctx, rest)
	case "day":
		return cli.day(rest)
	case "mark":
		return cli.mark(ctx, rest)
	case "finish":
		return cli.finish(ctx, rest)
	case "export":
		return cli.export(ctx, rest)
	case "import":
		return cli.importFile(ctx, rest)
	case "reset":
		return cli.reset(ctx, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// required fails with the usage when any of the named string flags is empty.
func required(fs *flag.FlagSet, names ...string) error {
	for _, name := range names {
		if fs.Lookup(name).Value.String() == "" {
			fs.Usage()
			return fmt.Errorf("-%s is required", name)
		}
	}
	return nil
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// action splits "add -x 1" into "add" and its flags.
func action(args []string, usage func()) (string, []string, error) {
	if len(args) == 0 {
		usage()
		return "", nil, errHelp
	}
	return args[0], args[1:], nil
}

func (cli *commandLine) today() string {
	return timeutil.FormatDate(cli.now())
}

func checkDate(s string) (time.Time, error) {
	t, err := timeutil.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("-date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// parseWeekday accepts 1-5 (Monday=1) or a Spanish day name.
func parseWeekday(s string) (schedule.Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		w := schedule.Weekday(n - 1)
		if w.Valid() {
			return w, nil
		}
		return 0, fmt.Errorf("-day must be 1-5, got %d", n)
	}
	fold := func(v string) string { return strings.ReplaceAll(strings.ToLower(v), "é", "e") }
	for _, w := range schedule.Weekdays {
		if fold(w.Label()) == fold(s) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("-day %q is not a school day", s)
}

func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (cli *commandLine) table() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
}

package backup

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendance-tracker/tracker/internal/domain/attendance"
	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/bolt"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := bolt.Open(context.Background(), filepath.Join(t.TempDir(), "backup.db"), bolt.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDocument() *Document {
	sched := schedule.New("sch1", 2026)
	sched.AddEntry(schedule.Entry{ID: "e1", ClassID: "k1", Weekday: schedule.Monday, Hour: "08:00"})

	return &Document{
		Version:    SupportedVersion,
		ExportedAt: time.Date(2026, time.January, 19, 12, 0, 0, 0, time.UTC),
		Teacher:    []roster.TeacherProfile{{ID: "t1", Name: "Marta", SetupComplete: true}},
		Courses:    []roster.Course{{ID: "c1", Grade: 6, Level: roster.LevelPrimary, Division: roster.DivisionA}},
		Classes:    []roster.Class{{ID: "k1", CourseID: "c1", Name: "Matemáticas"}},
		Students: []roster.Student{
			{ID: "s1", Name: "Ana", IdentificationNumber: "40111222", CourseID: "c1"},
			{ID: "s2", Name: "Luis", CourseID: "c1"},
		},
		Schedules: []schedule.Schedule{sched},
		AttendanceRecords: []attendance.Record{{
			ID: "r1", ClassID: "k1", Date: "2026-01-19",
			Records: []attendance.StudentAttendance{
				{StudentID: "s1", Status: attendance.StatusPresent},
				{StudentID: "s2", Status: attendance.StatusAbsent},
			},
		}},
		DayRecords: []attendance.DayRecord{
			{ID: "d1", Date: "2026-01-19", Status: attendance.DayCompleted},
			{ID: "d2", Date: "2026-01-20", Status: attendance.DaySkipped, Reason: attendance.ReasonHoliday},
		},
	}
}

func TestImportExport_RoundTrip(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	in := sampleDocument()
	require.NoError(t, in.Validate())

	require.NoError(t, st.Update(ctx, func(tx store.Tx) error { return Import(tx, in) }))

	var out *Document
	require.NoError(t, st.View(ctx, func(tx store.Tx) error {
		var err error
		out, err = Export(tx, in.ExportedAt)
		return err
	}))

	assert.Equal(t, in, out)
}

func TestWriteDecode_RoundTrip(t *testing.T) {
	in := sampleDocument()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))
	assert.Contains(t, buf.String(), "\n  \"version\": 1,")
	assert.Contains(t, buf.String(), `"attendanceRecords"`)
	assert.Contains(t, buf.String(), `"reason": "Feriado"`)

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestImport_ReplacesExistingData(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	require.NoError(t, st.Update(ctx, func(tx store.Tx) error {
		return store.Add(tx, store.TableCourses, "old", roster.Course{ID: "old", Grade: 1, Level: roster.LevelSecondary, Division: roster.DivisionD})
	}))
	require.NoError(t, st.Update(ctx, func(tx store.Tx) error { return Import(tx, sampleDocument()) }))

	require.NoError(t, st.View(ctx, func(tx store.Tx) error {
		_, found, err := store.Load[roster.Course](tx, store.TableCourses, "old")
		assert.False(t, found)
		return err
	}))
}

func TestImport_DuplicateIDRollsBack(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	require.NoError(t, st.Update(ctx, func(tx store.Tx) error { return Import(tx, sampleDocument()) }))

	doc := sampleDocument()
	doc.Students = append(doc.Students, roster.Student{ID: "s1", Name: "Copia", CourseID: "c1"})
	doc.Courses = append(doc.Courses, roster.Course{ID: "c2", Grade: 2, Level: roster.LevelPrimary, Division: roster.DivisionB})

	err := st.Update(ctx, func(tx store.Tx) error { return Import(tx, doc) })
	require.ErrorIs(t, err, store.ErrDuplicateKey)

	require.NoError(t, st.View(ctx, func(tx store.Tx) error {
		courses, err := store.All[roster.Course](tx, store.TableCourses)
		assert.Len(t, courses, 1, "previous data must survive")
		return err
	}))
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "truncated", in: `{"version": 1, "courses": [`},
		{name: "trailing text", in: `{"version": 1, "courses": []} this is not json`},
		{name: "two documents", in: `{"version": 1} {"version": 1}`},
		{name: "empty", in: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrMalformedDocument))
			assert.True(t, errors.Is(err, shared.ErrInvalidFormat))
		})
	}

	doc, err := Decode(strings.NewReader("{\"version\": 1}\n\n"))
	require.NoError(t, err, "trailing whitespace is fine")
	assert.Equal(t, 1, doc.Version)
}

func TestValidate_Version(t *testing.T) {
	for _, v := range []int{0, 2, -1} {
		doc := sampleDocument()
		doc.Version = v
		err := doc.Validate()
		assert.True(t, errors.Is(err, shared.ErrUnsupportedVersion), "version %d", v)
	}
}

func TestValidate_Entities(t *testing.T) {
	doc := sampleDocument()
	doc.Courses[0].Grade = 9
	doc.DayRecords[1].Reason = ""
	doc.Schedules[0].Entries[0].Hour = "8am"

	err := doc.Validate()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{
		"courses[0].grade",
		"schedules[0].entries[0].hour",
		"dayRecords[1].reason",
	}, fields)
}

func TestValidate_CompoundKeys(t *testing.T) {
	doc := sampleDocument()
	dup := doc.AttendanceRecords[0]
	dup.ID = "r2"
	doc.AttendanceRecords = append(doc.AttendanceRecords, dup)
	doc.DayRecords = append(doc.DayRecords, attendance.DayRecord{ID: "d3", Date: "2026-01-19", Status: attendance.DayCompleted})
	doc.Schedules = append(doc.Schedules, schedule.New("sch2", 2026))
	doc.Teacher = append(doc.Teacher, roster.TeacherProfile{ID: "t2", Name: "Otra"})

	err := doc.Validate()
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{
		"teacher",
		"schedules[1].year",
		"attendanceRecords[1]",
		"dayRecords[2].date",
	}, fields)
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, time.March, 5, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "asistencia-backup-2026-03-05.json", FileName(now))
}

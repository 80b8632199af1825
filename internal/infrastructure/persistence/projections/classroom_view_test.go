package projections

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendance-tracker/tracker/internal/domain/roster"
	"github.com/attendance-tracker/tracker/internal/domain/schedule"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/bolt"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := bolt.Open(context.Background(), filepath.Join(t.TempDir(), "view.db"), bolt.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, st store.Store, fn func(tx store.Tx) error) {
	t.Helper()
	require.NoError(t, st.Update(context.Background(), fn))
}

func TestClassroomView_Reload(t *testing.T) {
	st := newStore(t)
	seed(t, st, func(tx store.Tx) error {
		if err := store.Add(tx, store.TableTeacher, "t1", roster.TeacherProfile{ID: "t1", Name: "Marta", SetupComplete: true}); err != nil {
			return err
		}
		if err := store.Add(tx, store.TableCourses, "c1", roster.Course{ID: "c1", Grade: 1, Level: roster.LevelPrimary, Division: roster.DivisionA}); err != nil {
			return err
		}
		s := schedule.New("s1", 2026)
		s.AddEntry(schedule.Entry{ID: "e1", ClassID: "k1", Weekday: schedule.Monday, Hour: "08:00"})
		return store.Add(tx, store.TableSchedules, "s1", s)
	})

	v := NewClassroomView(st)
	assert.Nil(t, v.Teacher())
	assert.Empty(t, v.Courses())

	require.NoError(t, v.Reload(context.Background()))

	require.NotNil(t, v.Teacher())
	assert.Equal(t, "Marta", v.Teacher().Name)
	assert.Len(t, v.Courses(), 1)
	assert.NotNil(t, v.ScheduleForYear(2026))
	assert.Nil(t, v.ScheduleForYear(2025))
	assert.Equal(t, int64(1), v.Version())
	assert.False(t, v.LastUpdated().IsZero())
}

func TestClassroomView_HandleReloadsNamedTables(t *testing.T) {
	st := newStore(t)
	v := NewClassroomView(st)
	require.NoError(t, v.Reload(context.Background()))

	seed(t, st, func(tx store.Tx) error {
		if err := store.Add(tx, store.TableClasses, "k1", roster.Class{ID: "k1", CourseID: "c1", Name: "Lengua"}); err != nil {
			return err
		}
		return store.Add(tx, store.TableStudents, "s1", roster.Student{ID: "s1", CourseID: "c1", Name: "Ana"})
	})

	require.NoError(t, v.Handle(shared.NewChangeEvent(shared.EventClassAdded, "k1", store.TableClasses)))
	assert.Len(t, v.Classes(), 1)
	assert.Empty(t, v.Students(), "students table was not named")

	require.NoError(t, v.Handle(shared.NewChangeEvent(shared.EventDataImported, "")))
	assert.Len(t, v.Students(), 1)
}

func TestClassroomView_AccessorsReturnCopies(t *testing.T) {
	st := newStore(t)
	seed(t, st, func(tx store.Tx) error {
		return store.Add(tx, store.TableCourses, "c1", roster.Course{ID: "c1", Grade: 1, Level: roster.LevelPrimary, Division: roster.DivisionA})
	})

	v := NewClassroomView(st)
	require.NoError(t, v.Reload(context.Background()))

	courses := v.Courses()
	courses[0].Grade = 5
	assert.Equal(t, roster.Grade(1), v.Courses()[0].Grade)
}

func TestClassroomView_UnknownTable(t *testing.T) {
	v := NewClassroomView(newStore(t))
	err := v.Reload(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrUnknownTable)
}

// slowStore delays reads of one table so reloads can overlap.
type slowStore struct {
	store.Store
	table   string
	started chan struct{}
	once    sync.Once
}

func (s *slowStore) View(ctx context.Context, fn func(store.Tx) error) error {
	return s.Store.View(ctx, func(tx store.Tx) error {
		return fn(&slowTx{Tx: tx, s: s})
	})
}

type slowTx struct {
	store.Tx
	s *slowStore
}

func (tx *slowTx) ForEach(table string, fn func(id string, value []byte) error) error {
	if table == tx.s.table {
		tx.s.once.Do(func() { close(tx.s.started) })
		time.Sleep(50 * time.Millisecond)
	}
	return tx.Tx.ForEach(table, fn)
}

func TestClassroomView_OverlappingReloadsKeepEveryTable(t *testing.T) {
	base := newStore(t)
	st := &slowStore{Store: base, table: store.TableStudents, started: make(chan struct{})}
	v := NewClassroomView(st)

	seed(t, base, func(tx store.Tx) error {
		if err := store.Add(tx, store.TableCourses, "c1", roster.Course{ID: "c1", Grade: 1, Level: roster.LevelPrimary, Division: roster.DivisionA}); err != nil {
			return err
		}
		return store.Add(tx, store.TableStudents, "s1", roster.Student{ID: "s1", CourseID: "c1", Name: "Ana"})
	})

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- v.Reload(ctx, store.TableStudents) }()

	<-st.started
	require.NoError(t, v.Reload(ctx, store.TableCourses))
	require.NoError(t, <-done)

	assert.Len(t, v.Courses(), 1)
	assert.Len(t, v.Students(), 1)
}

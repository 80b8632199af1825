// Package storetest holds the behaviour every store.Store implementation
// must share. Backends run it from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// Factory returns an empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Store

type row struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Run exercises the store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("get missing returns nil", func(t *testing.T) {
		s := newStore(t)
		err := s.View(ctx, func(tx store.Tx) error {
			v, err := tx.Get(store.TableCourses, "nope")
			assert.Nil(t, v)
			return err
		})
		require.NoError(t, err)
	})

	t.Run("insert then get", func(t *testing.T) {
		s := newStore(t)
		name := randomdata.FullName(randomdata.RandomGender)

		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return store.Add(tx, store.TableStudents, "s1", row{ID: "s1", Name: name})
		}))

		var got row
		var found bool
		require.NoError(t, s.View(ctx, func(tx store.Tx) error {
			var err error
			got, found, err = store.Load[row](tx, store.TableStudents, "s1")
			return err
		}))
		assert.True(t, found)
		assert.Equal(t, name, got.Name)
	})

	t.Run("insert duplicate fails", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return tx.Insert(store.TableClasses, "k1", []byte(`{"id":"k1"}`))
		}))

		err := s.Update(ctx, func(tx store.Tx) error {
			return tx.Insert(store.TableClasses, "k1", []byte(`{"id":"k1"}`))
		})
		assert.True(t, errors.Is(err, store.ErrDuplicateKey), "got %v", err)
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			if err := store.Save(tx, store.TableCourses, "c1", row{ID: "c1", Name: "a"}); err != nil {
				return err
			}
			return store.Save(tx, store.TableCourses, "c1", row{ID: "c1", Name: "b"})
		}))

		rows := all(t, s, store.TableCourses)
		require.Len(t, rows, 1)
		assert.Equal(t, "b", rows[0].Name)
	})

	t.Run("failed update rolls back", func(t *testing.T) {
		s := newStore(t)
		boom := errors.New("boom")

		err := s.Update(ctx, func(tx store.Tx) error {
			if err := store.Add(tx, store.TableCourses, "c1", row{ID: "c1"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, all(t, s, store.TableCourses))
	})

	t.Run("delete and clear", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			for _, id := range []string{"a", "b", "c"} {
				if err := store.Add(tx, store.TableDayRecords, id, row{ID: id}); err != nil {
					return err
				}
			}
			if err := store.Add(tx, store.TableCourses, "c1", row{ID: "c1"}); err != nil {
				return err
			}
			if err := tx.Delete(store.TableDayRecords, "b"); err != nil {
				return err
			}
			return tx.Delete(store.TableDayRecords, "missing")
		}))
		assert.Len(t, all(t, s, store.TableDayRecords), 2)

		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return tx.Clear(store.TableDayRecords)
		}))
		assert.Empty(t, all(t, s, store.TableDayRecords))
		assert.Len(t, all(t, s, store.TableCourses), 1, "other tables untouched")
	})

	t.Run("foreach in key order", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			for _, id := range []string{"c", "a", "b"} {
				if err := store.Add(tx, store.TableSchedules, id, row{ID: id}); err != nil {
					return err
				}
			}
			return nil
		}))

		rows := all(t, s, store.TableSchedules)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	})

	t.Run("filter find and delete where", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			for _, r := range []row{{"1", "keep"}, {"2", "drop"}, {"3", "drop"}} {
				if err := store.Add(tx, store.TableStudents, r.ID, r); err != nil {
					return err
				}
			}
			return nil
		}))

		isDrop := func(r row) bool { return r.Name == "drop" }

		require.NoError(t, s.View(ctx, func(tx store.Tx) error {
			got, err := store.Filter(tx, store.TableStudents, isDrop)
			require.NoError(t, err)
			assert.Len(t, got, 2)

			first, ok, err := store.Find(tx, store.TableStudents, isDrop)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "2", first.ID)
			return nil
		}))

		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			removed, err := store.DeleteWhere(tx, store.TableStudents, func(r row) string { return r.ID }, isDrop)
			assert.Len(t, removed, 2)
			return err
		}))

		rows := all(t, s, store.TableStudents)
		require.Len(t, rows, 1)
		assert.Equal(t, "keep", rows[0].Name)
	})

	t.Run("unknown table", func(t *testing.T) {
		s := newStore(t)
		err := s.View(ctx, func(tx store.Tx) error {
			_, err := tx.Get("nope", "x")
			return err
		})
		assert.ErrorIs(t, err, store.ErrUnknownTable)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := s.Update(cctx, func(tx store.Tx) error {
			return store.Add(tx, store.TableCourses, "c1", row{ID: "c1"})
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, all(t, s, store.TableCourses))
	})
}

func all(t *testing.T, s store.Store, table string) []row {
	t.Helper()
	var rows []row
	require.NoError(t, s.View(context.Background(), func(tx store.Tx) error {
		var err error
		rows, err = store.All[row](tx, table)
		return err
	}))
	return rows
}

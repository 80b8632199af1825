// Package bolt implements the table store on a single local BoltDB file.
// Each table is a bucket; values are stored as given.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
	"github.com/attendance-tracker/tracker/pkg/retry"
)

// Options configures Open.
type Options struct {
	// Timeout is how long a single attempt waits for the file lock.
	Timeout time.Duration

	// Attempts is how many times the lock is tried before giving up.
	Attempts int

	// Logger receives retry warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Timeout:  time.Second,
		Attempts: 3,
	}
}

// Store is a store.Store backed by BoltDB.
type Store struct {
	db *bolt.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the database at path and makes sure every table
// bucket exists. A file lock held by another process is retried.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	onRetry := func(attempt int, err error, delay time.Duration) {
		opts.Logger.Warn("database file is locked, retrying",
			"path", path,
			"attempt", attempt,
			"delay", delay,
		)
	}

	db, err := retry.Get(ctx, retry.StoreOpenRetrier(opts.Attempts, onRetry), func(ctx context.Context) (*bolt.DB, error) {
		db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: opts.Timeout})
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, retry.Retryable(err)
		}
		return db, err
	})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, table := range store.Tables {
			if _, err := tx.CreateBucketIfNotExists([]byte(table)); err != nil {
				return fmt.Errorf("create bucket %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// View implements store.Store.
func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

// Update implements store.Store.
func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

type boltTx struct {
	tx *bolt.Tx
}

func (t *boltTx) bucket(table string) (*bolt.Bucket, error) {
	b := t.tx.Bucket([]byte(table))
	if b == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return b, nil
}

func (t *boltTx) Get(table, id string) ([]byte, error) {
	b, err := t.bucket(table)
	if err != nil {
		return nil, err
	}
	v := b.Get([]byte(id))
	if v == nil {
		return nil, nil
	}
	// bolt values are only valid for the life of the transaction.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (t *boltTx) Insert(table, id string, value []byte) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	if b.Get([]byte(id)) != nil {
		return fmt.Errorf("%w: %s/%s", store.ErrDuplicateKey, table, id)
	}
	return b.Put([]byte(id), value)
}

func (t *boltTx) Put(table, id string, value []byte) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.Put([]byte(id), value)
}

func (t *boltTx) Delete(table, id string) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.Delete([]byte(id))
}

func (t *boltTx) Clear(table string) error {
	if _, err := t.bucket(table); err != nil {
		return err
	}
	if err := t.tx.DeleteBucket([]byte(table)); err != nil {
		return err
	}
	_, err := t.tx.CreateBucket([]byte(table))
	return err
}

func (t *boltTx) ForEach(table string, fn func(id string, value []byte) error) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.ForEach(func(k, v []byte) error {
		return fn(string(k), v)
	})
}

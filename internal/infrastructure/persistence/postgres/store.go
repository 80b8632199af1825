package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// Store is a store.Store backed by the tracker_records relation.
type Store struct {
	conn *Connection
}

var _ store.Store = (*Store)(nil)

// Open connects, applies pending migrations and returns the store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	conn, err := NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := NewMigrator(conn).Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{conn: conn}, nil
}

// View implements store.Store.
func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.conn.WithTx(ctx, ReadOnlyTxOptions(), func(tx pgx.Tx) error {
		return fn(&pgTx{ctx: ctx, tx: tx})
	})
}

// Update implements store.Store.
func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		return fn(&pgTx{ctx: ctx, tx: tx})
	})
}

// Close closes the pool.
func (s *Store) Close() error {
	s.conn.Close()
	return nil
}

// Truncate removes every row of every table. Used by tests.
func (s *Store) Truncate(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM tracker_records`)
	return err
}

const (
	selectOneSQL = `SELECT body FROM tracker_records WHERE tbl = $1 AND id = $2`
	selectAllSQL = `SELECT id, body FROM tracker_records WHERE tbl = $1 ORDER BY id COLLATE "C"`
	insertSQL    = `INSERT INTO tracker_records (tbl, id, body) VALUES ($1, $2, $3)`
	upsertSQL    = `
		INSERT INTO tracker_records (tbl, id, body) VALUES ($1, $2, $3)
		ON CONFLICT (tbl, id) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`
	deleteSQL = `DELETE FROM tracker_records WHERE tbl = $1 AND id = $2`
	clearSQL  = `DELETE FROM tracker_records WHERE tbl = $1`
)

type pgTx struct {
	ctx context.Context
	tx  pgx.Tx
}

func checkTable(table string) error {
	if !store.IsTable(table) {
		return fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return nil
}

func (t *pgTx) Get(table, id string) ([]byte, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	var body []byte
	err := t.tx.QueryRow(t.ctx, selectOneSQL, table, id).Scan(&body)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", table, id, err)
	}
	return body, nil
}

func (t *pgTx) Insert(table, id string, value []byte) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := t.tx.Exec(t.ctx, insertSQL, table, id, value)
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s/%s", store.ErrDuplicateKey, table, id)
	}
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", table, id, err)
	}
	return nil
}

func (t *pgTx) Put(table, id string, value []byte) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := t.tx.Exec(t.ctx, upsertSQL, table, id, value)
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s/%s", store.ErrDuplicateKey, table, id)
	}
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", table, id, err)
	}
	return nil
}

func (t *pgTx) Delete(table, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if _, err := t.tx.Exec(t.ctx, deleteSQL, table, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	return nil
}

func (t *pgTx) Clear(table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if _, err := t.tx.Exec(t.ctx, clearSQL, table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

type record struct {
	id   string
	body []byte
}

// ForEach reads the whole table before calling fn: the connection is busy
// while rows are open.
func (t *pgTx) ForEach(table string, fn func(id string, value []byte) error) error {
	if err := checkTable(table); err != nil {
		return err
	}

	rows, err := t.tx.Query(t.ctx, selectAllSQL, table)
	if err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}
	recs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (record, error) {
		var r record
		err := row.Scan(&r.id, &r.body)
		return r, err
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}

	for _, r := range recs {
		if err := fn(r.id, r.body); err != nil {
			return err
		}
	}
	return nil
}

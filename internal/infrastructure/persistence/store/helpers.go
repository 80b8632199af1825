package store

import (
	"encoding/json"
	"fmt"
)

// Load decodes the row id of table into a T. The boolean is false when the
// row does not exist.
func Load[T any](tx Tx, table, id string) (T, bool, error) {
	var v T
	raw, err := tx.Get(table, id)
	if err != nil {
		return v, false, err
	}
	if raw == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s/%s: %w", table, id, err)
	}
	return v, true, nil
}

// All decodes every row of table in key order.
func All[T any](tx Tx, table string) ([]T, error) {
	out := make([]T, 0)
	err := tx.ForEach(table, func(id string, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode %s/%s: %w", table, id, err)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Filter decodes the rows of table for which keep returns true.
func Filter[T any](tx Tx, table string, keep func(T) bool) ([]T, error) {
	all, err := All[T](tx, table)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Find returns the first row of table matching match.
func Find[T any](tx Tx, table string, match func(T) bool) (T, bool, error) {
	var zero T
	all, err := All[T](tx, table)
	if err != nil {
		return zero, false, err
	}
	for _, v := range all {
		if match(v) {
			return v, true, nil
		}
	}
	return zero, false, nil
}

// Save encodes v and upserts it under id.
func Save(tx Tx, table, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", table, id, err)
	}
	return tx.Put(table, id, raw)
}

// Add encodes v and inserts it under id. ErrDuplicateKey when id exists.
func Add(tx Tx, table, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", table, id, err)
	}
	return tx.Insert(table, id, raw)
}

// DeleteWhere removes every row of table matching match and returns the
// removed values. Ids are collected before any delete so that the
// iteration never overlaps a write.
func DeleteWhere[T any](tx Tx, table string, idOf func(T) string, match func(T) bool) ([]T, error) {
	victims, err := Filter(tx, table, match)
	if err != nil {
		return nil, err
	}
	for _, v := range victims {
		if err := tx.Delete(table, idOf(v)); err != nil {
			return nil, err
		}
	}
	return victims, nil
}

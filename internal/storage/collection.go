package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Collection is a typed view of one key of a RecordStore. T must encode to a
// JSON object; its "id" field is owned by the store.
type Collection[T any] struct {
	store *RecordStore
	key   string
}

func NewCollection[T any](store *RecordStore, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

// List decodes every record in stored order. Records that do not fit T are
// skipped and logged, the same way an unreadable collection is.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	recs, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		v, err := decode[T](r)
		if err != nil {
			c.store.logger.Warn("skipping unreadable record",
				zap.String("key", c.key),
				zap.String("id", r.ID()),
				zap.Error(errors.Join(ErrSerialization, err)))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Create stores v under a new id and returns it as persisted.
func (c *Collection[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	fields, err := EncodeFields(v)
	if err != nil {
		return zero, err
	}
	rec, err := c.store.Add(ctx, c.key, fields)
	if err != nil {
		return zero, err
	}
	return decode[T](rec)
}

// Update merges fields into the record with the given id.
func (c *Collection[T]) Update(ctx context.Context, id string, fields Fields) (T, error) {
	var zero T
	rec, err := c.store.Update(ctx, c.key, id, fields)
	if err != nil {
		return zero, err
	}
	return decode[T](rec)
}

func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.key, id)
}

// Replace overwrites the collection with items, ids as given.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	recs := make([]Record, 0, len(items))
	for _, it := range items {
		rec, err := encode(it)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	return c.store.Set(ctx, c.key, recs)
}

// Modify applies fn to the first item matching match inside one locked
// read-modify-write of the collection. fn may return ErrNoChange to skip the
// write; the unchanged item is returned.
func (c *Collection[T]) Modify(ctx context.Context, match func(T) bool, fn func(*T) error) (T, error) {
	return c.modify(ctx, func(_ Record, v T) bool { return match(v) }, fn)
}

// ModifyByID is Modify keyed on the storage id.
func (c *Collection[T]) ModifyByID(ctx context.Context, id string, fn func(*T) error) (T, error) {
	return c.modify(ctx, func(r Record, _ T) bool { return r.ID() == id }, fn)
}

func (c *Collection[T]) modify(ctx context.Context, match func(Record, T) bool, fn func(*T) error) (T, error) {
	var (
		zero T
		out  T
	)
	err := c.store.Mutate(ctx, c.key, func(recs []Record) ([]Record, error) {
		for i := range recs {
			v, err := decode[T](recs[i])
			if err != nil || !match(recs[i], v) {
				continue
			}
			out = v
			if err := fn(&v); err != nil {
				return nil, err
			}
			fields, err := EncodeFields(v)
			if err != nil {
				return nil, err
			}
			next := recs[i].clone()
			if err := next.merge(fields); err != nil {
				return nil, err
			}
			if out, err = decode[T](next); err != nil {
				return nil, err
			}
			recs[i] = next
			return recs, nil
		}
		return nil, fmt.Errorf("no matching record in %q: %w", c.key, ErrNotFound)
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

func encode(v any) (Record, error) {
	fields, err := EncodeFields(v)
	if err != nil {
		return nil, err
	}
	rec := Record{}
	if err := rec.mergeAll(fields); err != nil {
		return nil, err
	}
	return rec, nil
}

func decode[T any](r Record) (T, error) {
	var v T
	err := r.Decode(&v)
	return v, err
}

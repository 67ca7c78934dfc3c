package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

type CharacterRepo struct {
	c *Collection[Character]
}

func NewCharacterRepo(store *RecordStore, ns Namespace) *CharacterRepo {
	return &CharacterRepo{c: NewCollection[Character](store, ns.Characters)}
}

// List returns characters in unlock order; characters unlocked together keep
// the order they were stored in.
func (r *CharacterRepo) List(ctx context.Context) ([]Character, error) {
	out, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("character list: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].UnlockedDate, out[j].UnlockedDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

// GetByCategory returns the user's character for category, or nil.
func (r *CharacterRepo) GetByCategory(ctx context.Context, category string) (*Character, error) {
	all, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("character get: %w", err)
	}
	for i := range all {
		if all[i].CategoryID == category {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *CharacterRepo) Create(ctx context.Context, c Character) (Character, error) {
	out, err := r.c.Create(ctx, c)
	if err != nil {
		return Character{}, fmt.Errorf("character create: %w", err)
	}
	return out, nil
}

func (r *CharacterRepo) Update(ctx context.Context, id string, fields Fields) (Character, error) {
	out, err := r.c.Update(ctx, id, fields)
	if err != nil {
		return Character{}, fmt.Errorf("character update: %w", err)
	}
	return out, nil
}

func (r *CharacterRepo) Remove(ctx context.Context, id string) error {
	if err := r.c.Remove(ctx, id); err != nil {
		return fmt.Errorf("character remove: %w", err)
	}
	return nil
}

// ModifyByCategory runs fn on the category's character inside one locked
// read-modify-write of the character collection.
func (r *CharacterRepo) ModifyByCategory(ctx context.Context, category string, fn func(*Character) error) (Character, error) {
	out, err := r.c.Modify(ctx, func(c Character) bool { return c.CategoryID == category }, fn)
	if err != nil {
		return Character{}, fmt.Errorf("character %s modify: %w", category, err)
	}
	return out, nil
}

// ModifyAll rewrites every character through fn in one cycle. Records that do
// not decode are not passed to fn and are kept as stored.
func (r *CharacterRepo) ModifyAll(ctx context.Context, fn func([]Character) ([]Character, error)) error {
	err := r.c.store.Mutate(ctx, r.c.key, func(recs []Record) ([]Record, error) {
		chars := make([]Character, 0, len(recs))
		var unreadable []Record
		for _, rec := range recs {
			c, err := decode[Character](rec)
			if err != nil {
				r.c.store.logger.Warn("skipping unreadable record",
					zap.String("key", r.c.key),
					zap.String("id", rec.ID()),
					zap.Error(errors.Join(ErrSerialization, err)))
				unreadable = append(unreadable, rec)
				continue
			}
			chars = append(chars, c)
		}
		next, err := fn(chars)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(next)+len(unreadable))
		for _, c := range next {
			rec, err := encode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		out = append(out, unreadable...)
		for i := range out {
			if out[i].ID() != "" {
				continue
			}
			id, err := r.c.store.uniqueID(out)
			if err != nil {
				return nil, err
			}
			raw, _ := json.Marshal(id)
			out[i][idField] = raw
		}
		return out, nil
	})
	if err != nil {
		return fmt.Errorf("character modify all: %w", err)
	}
	return nil
}

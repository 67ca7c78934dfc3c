package storage

import (
	"context"
	"fmt"
	"sort"
)

type DiaryRepo struct {
	c *Collection[Diary]
}

func NewDiaryRepo(store *RecordStore, ns Namespace) *DiaryRepo {
	return &DiaryRepo{c: NewCollection[Diary](store, ns.Diaries)}
}

// List returns diaries newest first by creation time.
func (r *DiaryRepo) List(ctx context.Context) ([]Diary, error) {
	out, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("diary list: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DiaryRepo) Get(ctx context.Context, id string) (*Diary, error) {
	all, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("diary get: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *DiaryRepo) Create(ctx context.Context, d Diary) (Diary, error) {
	out, err := r.c.Create(ctx, d)
	if err != nil {
		return Diary{}, fmt.Errorf("diary create: %w", err)
	}
	return out, nil
}

func (r *DiaryRepo) Update(ctx context.Context, id string, fields Fields) (Diary, error) {
	out, err := r.c.Update(ctx, id, fields)
	if err != nil {
		return Diary{}, fmt.Errorf("diary update: %w", err)
	}
	return out, nil
}

func (r *DiaryRepo) Remove(ctx context.Context, id string) error {
	if err := r.c.Remove(ctx, id); err != nil {
		return fmt.Errorf("diary remove: %w", err)
	}
	return nil
}

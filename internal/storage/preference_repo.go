package storage

import (
	"context"
	"fmt"
)

const representativeID = "representative"

// PreferenceRepo stores the representative category. The value is a single
// scalar kept as a one-element collection.
type PreferenceRepo struct {
	c *Collection[representative]
}

func NewPreferenceRepo(store *RecordStore, ns Namespace) *PreferenceRepo {
	return &PreferenceRepo{c: NewCollection[representative](store, ns.Representative)}
}

// Get returns the stored category, or "" if none was chosen.
func (r *PreferenceRepo) Get(ctx context.Context) (string, error) {
	all, err := r.c.List(ctx)
	if err != nil {
		return "", fmt.Errorf("representative get: %w", err)
	}
	for _, p := range all {
		if p.ID == representativeID {
			return p.CategoryID, nil
		}
	}
	return "", nil
}

func (r *PreferenceRepo) Set(ctx context.Context, category string) error {
	err := r.c.Replace(ctx, []representative{{ID: representativeID, CategoryID: category}})
	if err != nil {
		return fmt.Errorf("representative set: %w", err)
	}
	return nil
}

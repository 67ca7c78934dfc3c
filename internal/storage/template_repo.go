package storage

import (
	"context"
	"fmt"
)

// TemplateRepo keeps the per-user snapshot of the mission catalog taken at
// initialization. A non-empty snapshot means missions were materialized.
type TemplateRepo struct {
	c *Collection[MissionTemplate]
}

func NewTemplateRepo(store *RecordStore, ns Namespace) *TemplateRepo {
	return &TemplateRepo{c: NewCollection[MissionTemplate](store, ns.Templates)}
}

func (r *TemplateRepo) List(ctx context.Context) ([]MissionTemplate, error) {
	out, err := r.c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("template list: %w", err)
	}
	return out, nil
}

func (r *TemplateRepo) Replace(ctx context.Context, all []MissionTemplate) error {
	if err := r.c.Replace(ctx, all); err != nil {
		return fmt.Errorf("template replace: %w", err)
	}
	return nil
}
